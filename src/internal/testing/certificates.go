package testing

import (
	"crypto/tls"
	"log"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/tlsconfig"
	"code.cloudfoundry.org/tlsconfig/certtest"
)

// Certificates is a throwaway CA plus a server and a client certificate
// signed by it, written to a temporary directory.
type Certificates struct {
	dir string

	CAPath         string
	ServerCertPath string
	ServerKeyPath  string
	ClientCertPath string
	ClientKeyPath  string
}

// NewCertificates issues a server certificate for serverName.
func NewCertificates(serverName string) *Certificates {
	dir, err := os.MkdirTemp("", "ticks-certs")
	if err != nil {
		log.Fatal(err)
	}

	ca, err := certtest.BuildCA("ticks-ca")
	if err != nil {
		log.Fatal(err)
	}

	c := &Certificates{dir: dir}

	caPEM, err := ca.CertificatePEM()
	if err != nil {
		log.Fatal(err)
	}
	c.CAPath = c.write("ca.crt", caPEM)

	c.ServerCertPath, c.ServerKeyPath = c.issue(ca, "server", serverName)
	c.ClientCertPath, c.ClientKeyPath = c.issue(ca, "client", "ticks-client")

	return c
}

func (c *Certificates) Cleanup() {
	os.RemoveAll(c.dir)
}

// ServerTLSConfig serves the server certificate. With mutual set, clients
// must present a certificate signed by the same CA.
func (c *Certificates) ServerTLSConfig(mutual bool) *tls.Config {
	var opts []tlsconfig.ServerOption
	if mutual {
		opts = append(opts, tlsconfig.WithClientAuthenticationFromFile(c.CAPath))
	}

	tlsConfig, err := tlsconfig.Build(
		tlsconfig.WithInternalServiceDefaults(),
		tlsconfig.WithIdentityFromFile(c.ServerCertPath, c.ServerKeyPath),
	).Server(opts...)
	if err != nil {
		log.Fatal(err)
	}

	return tlsConfig
}

func (c *Certificates) issue(ca *certtest.Authority, name, domain string) (string, string) {
	cert, err := ca.BuildSignedCertificate(name, certtest.WithDomains(domain))
	if err != nil {
		log.Fatal(err)
	}

	certPEM, keyPEM, err := cert.CertificatePEMAndPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	return c.write(name+".crt", certPEM), c.write(name+".key", keyPEM)
}

func (c *Certificates) write(name string, contents []byte) string {
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		log.Fatal(err)
	}
	return path
}
