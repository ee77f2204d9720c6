// Package main provides hrmsctl, the terminal client for the HRMS Lite
// record service. It drives the same workflows the web UI does: employee
// directory management and attendance marking, with all input validated
// locally before anything reaches the network.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
