package app

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudfoundry/ticks-release/src/internal/metrics"
	"github.com/cloudfoundry/ticks-release/src/internal/ticker"
	"github.com/cloudfoundry/ticks-release/src/pkg/eventlogging"
	"github.com/cloudfoundry/ticks-release/src/pkg/influx"
	"github.com/cloudfoundry/ticks-release/src/pkg/logger"
	"github.com/cloudfoundry/ticks-release/src/pkg/profiling"
	"github.com/cloudfoundry/ticks-release/src/pkg/tracing"
)

const (
	HeartbeatMeasurement = "heartbeat"
	PingSpan             = "ping"
)

// Backend is the InfluxDB connection used by the heartbeat.
type Backend interface {
	influx.Client
	Ping() (string, error)
}

type HeartbeatApp struct {
	cfg     *Config
	log     *logger.Logger
	backend Backend

	debugMu       sync.Mutex
	metricsServer *metrics.Server
	metrics       metrics.Registrar

	stopOnce sync.Once
	done     chan struct{}
}

type HeartbeatOption func(*HeartbeatApp)

// WithBackend replaces the HTTP client built from the configuration.
func WithBackend(b Backend) HeartbeatOption {
	return func(app *HeartbeatApp) {
		app.backend = b
	}
}

func NewHeartbeatApp(cfg *Config, log *logger.Logger, opts ...HeartbeatOption) *HeartbeatApp {
	app := &HeartbeatApp{
		cfg:  cfg,
		log:  log,
		done: make(chan struct{}),
	}

	for _, o := range opts {
		o(app)
	}

	return app
}

// DebugAddr returns the address (host and port) that the debug server is bound
// to. If the debug server has not been started an empty string will be returned.
func (app *HeartbeatApp) DebugAddr() string {
	app.debugMu.Lock()
	defer app.debugMu.Unlock()

	if app.metricsServer == nil {
		return ""
	}
	return app.metricsServer.Addr()
}

// Run starts the HeartbeatApp, this is a blocking method call.
func (app *HeartbeatApp) Run() {
	app.startDebugServer()

	if app.backend == nil {
		backend, err := app.newHTTPClient()
		if err != nil {
			app.log.Fatal("unable to create InfluxDB client", err)
		}
		app.backend = backend
	}

	opts := []eventlogging.EventLoggerOption{
		eventlogging.WithDefaultTags(app.cfg.DefaultTags),
		eventlogging.WithDatabase(app.cfg.InfluxDBDatabase),
		eventlogging.WithMetrics(app.metrics),
	}
	if app.cfg.InfluxDBRetentionPolicy != "" {
		opts = append(opts, eventlogging.WithRetentionPolicy(app.cfg.InfluxDBRetentionPolicy))
	}
	eventLogger := eventlogging.NewEventLogger(app.backend, app.log, opts...)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	// Failed pings stretch the interval up to HeartbeatMaxInterval, the
	// first successful one brings it back.
	t := ticker.New(ticker.NewExponentialDelay(&ticker.Config{
		BaseDelay: app.cfg.HeartbeatInterval,
		MaxDelay:  app.cfg.HeartbeatMaxInterval,
	}))
	defer t.Stop()

	app.beat(eventLogger)
	for {
		select {
		case <-t.C:
			if app.beat(eventLogger) {
				t.Reset()
			}
		case sig := <-sigs:
			app.log.Info("received signal", logger.String("signal", sig.String()))
			app.Stop()
			return
		case <-app.done:
			return
		}
	}
}

// Stop stops all the subprocesses for the application.
func (app *HeartbeatApp) Stop() {
	app.stopOnce.Do(func() {
		close(app.done)

		app.debugMu.Lock()
		defer app.debugMu.Unlock()

		if app.metricsServer == nil {
			return
		}
		if err := app.metricsServer.Close(); err != nil {
			app.log.Error("closing metrics server", err)
		}
		app.metricsServer = nil
	})
}

func (app *HeartbeatApp) beat(eventLogger *eventlogging.EventLogger) bool {
	var pingErr error

	profiling.Profile(eventLogger, HeartbeatMeasurement, func(p *profiling.Profiler) {
		p.StartNewSpan(PingSpan)
		version, err := app.backend.Ping()
		p.FinishSpan()

		pingErr = err
		p.AddField("success", eventlogging.Bool(err == nil))
		if version != "" {
			p.AddTag("influxdb_version", version)
		}
	},
		profiling.WithTracingController(tracing.NewUUIDController("")),
		profiling.WithMetrics(app.metrics),
	)

	app.metrics.Inc(metrics.TicksHeartbeatsTotal)

	if pingErr != nil {
		app.log.Error("InfluxDB ping failed", pingErr)
		return false
	}
	app.metrics.Set(metrics.TicksHeartbeatLastSuccessTimestampSeconds, float64(time.Now().Unix()))
	return true
}

func (app *HeartbeatApp) newHTTPClient() (*influx.HTTPClient, error) {
	var opts []influx.HTTPClientOption

	if app.cfg.TLS.Enabled() {
		serverName := app.cfg.InfluxDBServerName
		if serverName == "" {
			u, err := url.Parse(app.cfg.InfluxDBAddr)
			if err != nil {
				return nil, err
			}
			serverName = u.Hostname()
		}

		tlsConfig, err := app.cfg.TLS.ClientConfig(serverName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, influx.WithTLSConfig(tlsConfig))
	}

	if app.cfg.InfluxDBUsername != "" {
		opts = append(opts, influx.WithBasicAuth(app.cfg.InfluxDBUsername, app.cfg.InfluxDBPassword))
	}

	return influx.NewHTTPClient(app.cfg.InfluxDBAddr, opts...)
}

func (app *HeartbeatApp) startDebugServer() {
	app.debugMu.Lock()
	defer app.debugMu.Unlock()

	opts := append(metrics.EventLoggerMetrics(),
		metrics.WithCounter(metrics.TicksHeartbeatsTotal, prometheus.CounterOpts{
			Help: "Number of heartbeats sent to InfluxDB",
		}),
		metrics.WithGauge(metrics.TicksHeartbeatLastSuccessTimestampSeconds, prometheus.GaugeOpts{
			Help: "Unix time of the last successful InfluxDB ping",
		}),
	)
	app.metrics = metrics.NewRegistrar(app.log, "heartbeat", opts...)

	server, err := metrics.StartMetricsServer(
		fmt.Sprintf("localhost:%d", app.cfg.HealthPort),
		nil,
		app.log,
		app.metrics,
	)
	if err != nil {
		app.log.Fatal("unable to start debug server", err)
	}
	app.metricsServer = server
}
