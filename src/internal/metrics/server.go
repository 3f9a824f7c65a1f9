package metrics

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudfoundry/ticks-release/src/pkg/logger"
)

type Server struct {
	listener  net.Listener
	server    *http.Server
	registrar Registrar
}

func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.server.Close()
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Registrar() Registrar {
	return s.registrar
}

// StartMetricsServer serves /metrics and the pprof endpoints on addr. A nil
// tlsConfig serves plain HTTP.
func StartMetricsServer(addr string, tlsConfig *tls.Config, log *logger.Logger, registrar Registrar) (*Server, error) {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registrar.Gatherer(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	debugRouter := router.PathPrefix("/debug/pprof").Subrouter()
	debugRouter.HandleFunc("/cmdline", pprof.Cmdline)
	debugRouter.HandleFunc("/profile", pprof.Profile)
	debugRouter.HandleFunc("/symbol", pprof.Symbol)
	debugRouter.HandleFunc("/trace", pprof.Trace)
	debugRouter.PathPrefix("/").HandlerFunc(pprof.Index)

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		Handler:      router,
		TLSConfig:    tlsConfig,
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("unable to setup metrics server", err, logger.String("addr", addr))
		return nil, err
	}

	if tlsConfig != nil {
		lis = tls.NewListener(lis, tlsConfig)
	}

	go func() {
		log.Info("metrics server listening", logger.String("addr", lis.Addr().String()))
		if err := server.Serve(lis); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server closing", err)
			return
		}
		log.Info("metrics server closing")
	}()

	return &Server{
		listener:  lis,
		server:    server,
		registrar: registrar,
	}, nil
}
