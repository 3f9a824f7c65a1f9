package tls

import (
	"crypto/tls"

	"code.cloudfoundry.org/tlsconfig"
)

// TLS holds the certificate paths for talking to the InfluxDB backend.
// CertPath and KeyPath are only needed when the backend requires client
// certificates.
type TLS struct {
	CAPath   string `env:"INFLUXDB_CA_PATH,   report"`
	CertPath string `env:"INFLUXDB_CERT_PATH, report"`
	KeyPath  string `env:"INFLUXDB_KEY_PATH,  report"`
}

// Enabled reports whether a CA was configured.
func (t TLS) Enabled() bool {
	return t.CAPath != ""
}

// ClientConfig builds a client config from the paths, using mutual TLS when a
// certificate and key have been provided.
func (t TLS) ClientConfig(serverName string) (*tls.Config, error) {
	if t.CertPath != "" || t.KeyPath != "" {
		return NewMutualTLSClientConfig(t.CAPath, t.CertPath, t.KeyPath, serverName)
	}

	return NewTLSClientConfig(t.CAPath, serverName)
}

func NewMutualTLSClientConfig(caPath, certPath, keyPath, serverName string) (*tls.Config, error) {
	return tlsconfig.Build(
		tlsconfig.WithInternalServiceDefaults(),
		tlsconfig.WithIdentityFromFile(certPath, keyPath),
	).Client(
		tlsconfig.WithAuthorityFromFile(caPath),
		tlsconfig.WithServerName(serverName),
	)
}

func NewTLSClientConfig(caPath, serverName string) (*tls.Config, error) {
	return tlsconfig.Build(
		tlsconfig.WithInternalServiceDefaults(),
	).Client(
		tlsconfig.WithAuthorityFromFile(caPath),
		tlsconfig.WithServerName(serverName),
	)
}
