package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statusLedgers   bool
	statusCompanies bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the Tally connection",
	Long: `Check whether the configured Tally instance is reachable. With --ledgers
or --companies, also export the matching lists.

Examples:
  tally-bridge status
  tally-bridge status --ledgers
  tally-bridge status --companies --tally-url http://192.168.1.5:9000`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusLedgers, "ledgers", false, "List existing ledgers")
	statusCmd.Flags().BoolVar(&statusCompanies, "companies", false, "List open companies")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	p := newPipeline()

	st := p.Status(ctx)
	fmt.Printf("%s (%s)\n", onlineWord(st.Online), st.Info)
	if !st.Online {
		return fmt.Errorf("tally unreachable at %s", tallyURL)
	}

	if statusLedgers {
		set, err := p.Ledgers(ctx)
		if err != nil {
			return fmt.Errorf("fetching ledgers: %w", err)
		}
		fmt.Printf("%d ledgers:\n", set.Len())
		for _, name := range set.Names() {
			fmt.Println("  " + name)
		}
	}

	if statusCompanies {
		names, err := p.Companies(ctx)
		if err != nil {
			return fmt.Errorf("fetching companies: %w", err)
		}
		fmt.Printf("%d companies:\n", len(names))
		for _, name := range names {
			fmt.Println("  " + name)
		}
	}
	return nil
}

func onlineWord(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}
