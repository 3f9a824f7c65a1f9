package app

import (
	"fmt"
	"log"
	"os"
	"time"

	envstruct "code.cloudfoundry.org/go-envstruct"
	"gopkg.in/yaml.v2"

	sharedtls "github.com/cloudfoundry/ticks-release/src/internal/tls"
)

type Config struct {
	InfluxDBAddr            string `env:"INFLUXDB_ADDR,             required, report"`
	InfluxDBServerName      string `env:"INFLUXDB_SERVER_NAME,      report"`
	InfluxDBUsername        string `env:"INFLUXDB_USERNAME,         report"`
	InfluxDBPassword        string `env:"INFLUXDB_PASSWORD"`
	InfluxDBDatabase        string `env:"INFLUXDB_DATABASE,         required, report"`
	InfluxDBRetentionPolicy string `env:"INFLUXDB_RETENTION_POLICY, report"`
	TLS                     sharedtls.TLS

	HeartbeatInterval    time.Duration     `env:"HEARTBEAT_INTERVAL,     report"`
	HeartbeatMaxInterval time.Duration     `env:"HEARTBEAT_MAX_INTERVAL, report"`
	HealthPort           int               `env:"HEALTH_PORT,            report"`
	DefaultTagsPath      string            `env:"DEFAULT_TAGS_PATH,      report"`
	DefaultTags          map[string]string `env:"-, report"`

	LogLevel string `env:"LOG_LEVEL, report"`
}

// LoadConfig creates Config object from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		LogLevel:             "info",
		HeartbeatInterval:    10 * time.Second,
		HeartbeatMaxInterval: 5 * time.Minute,
		HealthPort:           6067,
	}

	if err := envstruct.Load(cfg); err != nil {
		log.Fatalf("failed to load config from environment: %s", err)
	}

	if cfg.DefaultTagsPath != "" {
		tags, err := LoadDefaultTags(cfg.DefaultTagsPath)
		if err != nil {
			log.Fatalf("failed to load default tags: %s", err)
		}
		cfg.DefaultTags = tags
	}

	_ = envstruct.WriteReport(cfg)

	return cfg
}

// LoadDefaultTags reads a flat YAML mapping of tag names to values.
func LoadDefaultTags(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tags := map[string]string{}
	if err := yaml.UnmarshalStrict(data, &tags); err != nil {
		return nil, fmt.Errorf("parsing %s: %s", path, err)
	}

	return tags, nil
}
