package main

import (
	"context"
	"os"
	"os/signal"

	"vincit.fi/collector/backend"
	"vincit.fi/collector/common"
	"vincit.fi/collector/common/constants"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/ui/console"
)

func main() {
	logger.Initialize(logger.ERROR)
	params, err := common.ParseParams()
	if err != nil {
		logger.Error.Fatal(err)
	}
	logger.Initialize(logger.StringToLogLevel(params.LogLevel()))

	stores, err := backend.InitializeStores(params.DbDir(), constants.DatabaseFileName)
	if err != nil {
		logger.Error.Fatal("Error opening database: ", err)
	}
	defer stores.Close()

	brokers := backend.InitializeEventBrokers(constants.EventBusQueueSize)
	services, err := backend.InitializeServices(params, stores, brokers)
	if err != nil {
		logger.Error.Fatal("Error initializing services: ", err)
	}
	defer services.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = console.NewConsole(params, services.Remote, services.Session, services.Collection, brokers.Broker).
		WithAccountDeleter(services).
		WithIO(os.Stdin, os.Stdout).
		Run(ctx)
	if err != nil && ctx.Err() == nil {
		logger.Error.Printf("Console stopped: %s", err)
	}
}
