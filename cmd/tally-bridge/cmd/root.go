package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/model"
)

var (
	version = "1.0.0"

	// Global flags, resolved through viper so TALLY_* environment
	// variables work as fallbacks.
	verbose   bool
	tallyURL  string
	company   string
	homeState string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tally-bridge",
	Short: "Encode invoices and bank statements as Tally Prime import XML",
	Long: `Tally Bridge converts normalized invoice and bank-statement JSON into
Tally Prime's XML import format and talks to a running Tally instance.

Examples:
  # Encode an invoice to XML on stdout
  tally-bridge encode invoice.json

  # Encode and push in one step
  tally-bridge encode invoice.json --push

  # Encode a bank statement
  tally-bridge encode statement.json --bank

  # Push a prebuilt document
  tally-bridge push vouchers.xml

  # Check the Tally connection
  tally-bridge status

  # Start the HTTP API
  tally-bridge serve`,
	Version: version,
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&tallyURL, "tally-url", "", "Tally server URL (env: TALLY_URL)")
	rootCmd.PersistentFlags().StringVar(&company, "company", "", "Target company name (env: TALLY_COMPANY)")
	rootCmd.PersistentFlags().StringVar(&homeState, "home-state", "", "Home GST state code (env: TALLY_HOME_STATE)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	v := viper.New()
	v.SetDefault("url", gateway.DefaultBaseURL)
	v.SetDefault("company", model.DefaultCompany)
	v.SetDefault("home_state", model.DefaultHomeState)
	_ = v.BindEnv("url", "TALLY_URL")
	_ = v.BindEnv("company", "TALLY_COMPANY")
	_ = v.BindEnv("home_state", "TALLY_HOME_STATE")

	// Flags win over environment, environment over defaults.
	if tallyURL == "" {
		tallyURL = v.GetString("url")
	}
	if company == "" {
		company = v.GetString("company")
	}
	if homeState == "" {
		homeState = v.GetString("home_state")
	}

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		logger = zap.NewNop()
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
