// Package tallylib provides a public API for encoding accounting records
// as Tally Prime import XML and pushing them to a running Tally instance.
//
// Example usage:
//
//	enc := tallylib.NewEncoder(tallylib.Options{})
//	ledgers := tallylib.NewLedgerSet()
//	result := enc.EncodeInvoice(&tallylib.InvoiceRecord{...}, ledgers)
//	fmt.Println(result.XML)
package tallylib

import (
	"context"

	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/processor"
)

// Re-export core types for public API
type (
	InvoiceRecord       = model.InvoiceRecord
	LineItem            = model.LineItem
	BankStatement       = model.BankStatement
	BankTransaction     = model.BankTransaction
	BankTransactionType = model.BankTransactionType
	Direction           = model.Direction
	LedgerSet           = model.LedgerSet
	RecordError         = model.RecordError
	Result              = processor.Result
	GatewayResult       = gateway.Result
	GatewayStatus       = gateway.Status
)

// Re-export direction and transaction-type constants
const (
	DirectionPurchase = model.DirectionPurchase
	DirectionSales    = model.DirectionSales

	BankPayment = model.BankPayment
	BankReceipt = model.BankReceipt
	BankContra  = model.BankContra
)

// NewLedgerSet creates a ledger set seeded with the given names.
func NewLedgerSet(names ...string) *LedgerSet {
	return model.NewLedgerSet(names...)
}

// Options configures an Encoder. Zero values select the defaults:
// current company, home state 27 and Tally at localhost:9000.
type Options struct {
	Company   string
	HomeState string
	TallyURL  string
	Logger    *zap.Logger
}

// Encoder is the public face of the encode-and-push pipeline.
type Encoder struct {
	pipeline *processor.Pipeline
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts Options) *Encoder {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var gwOpts []gateway.ClientOption
	if opts.TallyURL != "" {
		gwOpts = append(gwOpts, gateway.WithBaseURL(opts.TallyURL))
	}
	gwOpts = append(gwOpts, gateway.WithLogger(logger))

	return &Encoder{
		pipeline: processor.NewPipeline(
			processor.WithCompany(opts.Company),
			processor.WithHomeState(opts.HomeState),
			processor.WithGateway(gateway.NewClient(gwOpts...)),
			processor.WithLogger(logger),
		),
	}
}

// EncodeInvoice renders one invoice record as Tally import XML.
func (e *Encoder) EncodeInvoice(rec *InvoiceRecord, ledgers *LedgerSet) *Result {
	return e.pipeline.EncodeInvoice(rec, ledgers)
}

// EncodeBankStatement renders one bank statement as Tally import XML.
func (e *Encoder) EncodeBankStatement(st *BankStatement, ledgers *LedgerSet) *Result {
	return e.pipeline.EncodeBank(st, ledgers)
}

// EncodeAndPush encodes an invoice and sends it to Tally in one step.
func (e *Encoder) EncodeAndPush(ctx context.Context, rec *InvoiceRecord, ledgers *LedgerSet) *Result {
	return e.pipeline.EncodeAndPush(ctx, rec, ledgers)
}

// Push sends a prebuilt import document to Tally.
func (e *Encoder) Push(ctx context.Context, xml string) GatewayResult {
	return e.pipeline.Push(ctx, xml)
}

// Status probes the Tally connection.
func (e *Encoder) Status(ctx context.Context) GatewayStatus {
	return e.pipeline.Status(ctx)
}

// Ledgers fetches the ledger names Tally already knows.
func (e *Encoder) Ledgers(ctx context.Context) (*LedgerSet, error) {
	return e.pipeline.Ledgers(ctx)
}

// Companies fetches the companies currently open in Tally.
func (e *Encoder) Companies(ctx context.Context) ([]string, error) {
	return e.pipeline.Companies(ctx)
}
