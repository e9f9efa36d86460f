package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push [file.xml]",
	Short: "Push a prebuilt import document to Tally",
	Long: `Push an XML import document to the configured Tally instance and report
how Tally answered.

Examples:
  tally-bridge push vouchers.xml
  tally-bridge push - < vouchers.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	result := newPipeline().Push(context.Background(), string(data))
	fmt.Println(result.Message)
	if !result.Success {
		return fmt.Errorf("push failed")
	}
	printVerbose("created %d, altered %d\n", result.Created, result.Altered)
	return nil
}
