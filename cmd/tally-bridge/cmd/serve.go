package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tally-bridge/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server exposing the codec and the Tally gateway.

The API provides endpoints for:
  - POST /api/v1/encode/invoice  - Encode invoice record
  - POST /api/v1/encode/bank     - Encode bank statement
  - POST /api/v1/tally/push      - Push XML to Tally
  - GET  /api/v1/tally/status    - Tally connection status
  - GET  /api/v1/tally/ledgers   - Existing ledgers
  - GET  /api/v1/tally/companies - Open companies
  - GET  /health                 - Health check

Examples:
  # Start server on default port
  tally-bridge serve

  # Custom port and Tally address
  tally-bridge serve --address :8080 --tally-url http://192.168.1.5:9000

  # Start in debug mode
  tally-bridge serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      serverAddr,
		TallyURL:     tallyURL,
		Company:      company,
		HomeState:    homeState,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       logger,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s (Tally at %s)\n", serverAddr, tallyURL)
	return srv.Run()
}
