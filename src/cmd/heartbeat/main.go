package main

import (
	"github.com/cloudfoundry/ticks-release/src/cmd/heartbeat/app"
	"github.com/cloudfoundry/ticks-release/src/pkg/logger"
)

func main() {
	cfg := app.LoadConfig()

	log := logger.NewLogger(cfg.LogLevel, "heartbeat")
	log.Info("starting")
	defer log.Info("exiting")

	app.NewHeartbeatApp(cfg, log).Run()
}
