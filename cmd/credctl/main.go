// Package main implements credctl, the operator CLI for the credential service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/researcher10001-hub/bytecity-accounting/internal/bootstrap"
	"github.com/researcher10001-hub/bytecity-accounting/internal/logger"
)

// deps is swapped out in tests.
var deps = bootstrap.DefaultDeps()

var rootCmd = &cobra.Command{
	Use:           "credctl",
	Short:         "Credential service operator tool",
	Long:          "credctl prepares the users row store and updates passwords using the same rules as the HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// stdout carries command output
	logger.InitWithWriter(os.Stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
