package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/processor"
)

var (
	encodeBank   bool
	encodeOutput string
	encodePush   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a normalized JSON record as Tally import XML",
	Long: `Encode a normalized invoice record (or bank statement with --bank) as
Tally Prime import XML. Reads JSON from the given file, or stdin when the
file is "-".

Examples:
  # Invoice to stdout
  tally-bridge encode invoice.json

  # Bank statement to a file
  tally-bridge encode statement.json --bank -o statement.xml

  # Encode and push in one step
  tally-bridge encode invoice.json --push`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().BoolVar(&encodeBank, "bank", false, "Treat input as a bank statement")
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Write XML to file instead of stdout")
	encodeCmd.Flags().BoolVar(&encodePush, "push", false, "Push the encoded document to Tally")
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	p := newPipeline()
	ledgers := model.NewLedgerSet()

	var result *processor.Result
	if encodeBank {
		var st model.BankStatement
		if err := json.Unmarshal(data, &st); err != nil {
			return fmt.Errorf("decoding bank statement: %w", err)
		}
		result = p.EncodeBank(&st, ledgers)
	} else {
		var rec model.InvoiceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decoding invoice record: %w", err)
		}
		result = p.EncodeInvoice(&rec, ledgers)
	}
	if result.Error != nil {
		return result.Error
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if err := writeOutput(encodeOutput, result.XML); err != nil {
		return err
	}

	if encodePush {
		gw := p.Push(context.Background(), result.XML)
		fmt.Fprintln(os.Stderr, gw.Message)
		if !gw.Success {
			return fmt.Errorf("push failed: %s", gw.Message)
		}
	}
	return nil
}

func newPipeline() *processor.Pipeline {
	return processor.NewPipeline(
		processor.WithCompany(company),
		processor.WithHomeState(homeState),
		processor.WithGateway(gateway.NewClient(
			gateway.WithBaseURL(tallyURL),
			gateway.WithLogger(logger))),
		processor.WithLogger(logger),
	)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path, xml string) error {
	if path == "" {
		fmt.Println(xml)
		return nil
	}
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	printVerbose("wrote %d bytes to %s\n", len(xml), path)
	return nil
}
