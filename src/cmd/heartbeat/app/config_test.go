package app_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/cloudfoundry/ticks-release/src/cmd/heartbeat/app"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "heartbeat-config")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(contents string) string {
		path := filepath.Join(dir, "tags.yml")
		Expect(os.WriteFile(path, []byte(contents), 0600)).To(Succeed())
		return path
	}

	Describe("LoadDefaultTags()", func() {
		It("reads a mapping of tags", func() {
			path := writeFile("deployment: cf\nregion: eu-west-1\n")

			tags, err := LoadDefaultTags(path)

			Expect(err).ToNot(HaveOccurred())
			Expect(tags).To(Equal(map[string]string{
				"deployment": "cf",
				"region":     "eu-west-1",
			}))
		})

		It("rejects nested values", func() {
			path := writeFile("deployment:\n  name: cf\n")

			_, err := LoadDefaultTags(path)

			Expect(err).To(HaveOccurred())
		})

		It("returns an error for a missing file", func() {
			_, err := LoadDefaultTags(filepath.Join(dir, "missing.yml"))

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("LoadConfig()", func() {
		BeforeEach(func() {
			os.Setenv("INFLUXDB_ADDR", "http://localhost:8086")
			os.Setenv("INFLUXDB_DATABASE", "ticks")
		})

		AfterEach(func() {
			os.Unsetenv("INFLUXDB_ADDR")
			os.Unsetenv("INFLUXDB_DATABASE")
			os.Unsetenv("HEARTBEAT_INTERVAL")
			os.Unsetenv("DEFAULT_TAGS_PATH")
		})

		It("applies defaults", func() {
			cfg := LoadConfig()

			Expect(cfg.InfluxDBAddr).To(Equal("http://localhost:8086"))
			Expect(cfg.InfluxDBDatabase).To(Equal("ticks"))
			Expect(cfg.HeartbeatInterval).To(Equal(10 * time.Second))
			Expect(cfg.HeartbeatMaxInterval).To(Equal(5 * time.Minute))
			Expect(cfg.HealthPort).To(Equal(6067))
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.DefaultTags).To(BeEmpty())
		})

		It("loads default tags from the configured file", func() {
			os.Setenv("DEFAULT_TAGS_PATH", writeFile("deployment: cf\n"))
			os.Setenv("HEARTBEAT_INTERVAL", "1m")

			cfg := LoadConfig()

			Expect(cfg.HeartbeatInterval).To(Equal(time.Minute))
			Expect(cfg.DefaultTags).To(Equal(map[string]string{"deployment": "cf"}))
		})
	})
})
