package tls_test

import (
	"path/filepath"

	sharedtls "github.com/cloudfoundry/ticks-release/src/internal/tls"
	"github.com/cloudfoundry/ticks-release/src/internal/testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("TLS", func() {
	var certs *testing.Certificates

	BeforeEach(func() {
		certs = testing.NewCertificates("influxdb")
	})

	AfterEach(func() {
		certs.Cleanup()
	})

	It("is enabled once a CA is configured", func() {
		Expect(sharedtls.TLS{}.Enabled()).To(BeFalse())
		Expect(sharedtls.TLS{CAPath: certs.CAPath}.Enabled()).To(BeTrue())
	})

	It("builds a client config trusting the CA", func() {
		cfg, err := sharedtls.TLS{CAPath: certs.CAPath}.ClientConfig("influxdb")

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.ServerName).To(Equal("influxdb"))
		Expect(cfg.RootCAs).ToNot(BeNil())
		Expect(cfg.Certificates).To(BeEmpty())
	})

	It("presents a client certificate when one is configured", func() {
		cfg, err := sharedtls.TLS{
			CAPath:   certs.CAPath,
			CertPath: certs.ClientCertPath,
			KeyPath:  certs.ClientKeyPath,
		}.ClientConfig("influxdb")

		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Certificates).To(HaveLen(1))
	})

	It("returns an error for a missing CA", func() {
		_, err := sharedtls.NewTLSClientConfig(filepath.Join("does", "not", "exist"), "influxdb")

		Expect(err).To(HaveOccurred())
	})

	It("returns an error for a key without a certificate", func() {
		_, err := sharedtls.TLS{
			CAPath:  certs.CAPath,
			KeyPath: certs.ClientKeyPath,
		}.ClientConfig("influxdb")

		Expect(err).To(HaveOccurred())
	})
})
