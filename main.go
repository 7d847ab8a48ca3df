package main

import (
	"log"
	"os"

	"github.com/avstrong/pricelist/internal/app"
	"github.com/avstrong/pricelist/internal/config"
	"github.com/avstrong/pricelist/internal/logger"
)

func main() {
	conf, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(logger.Config{Level: conf.LogLevel, JSON: conf.LogJSON})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	var exitCode int

	if err := app.Run(conf, l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	_ = l.Sync()

	os.Exit(exitCode)
}
