// Package processor composes the codec and the gateway into one
// encode-then-push pipeline. Results are values: encoding problems show
// up as warnings, transport problems as the gateway's own Result, and
// only unusable input produces an Error.
package processor

import (
	"context"

	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/tally"
)

// Result is the outcome of one pipeline run.
type Result struct {
	XML      string          `json:"xml,omitempty"`
	Gateway  *gateway.Result `json:"gateway,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    error           `json:"-"`
}

// Pipeline wires one encoder to one gateway client.
type Pipeline struct {
	encoder *tally.Encoder
	client  *gateway.Client
	logger  *zap.Logger
}

// Option configures the pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	company   string
	homeState string
	client    *gateway.Client
	logger    *zap.Logger
}

// WithCompany targets a named Tally company instead of the current one.
func WithCompany(company string) Option {
	return func(cfg *pipelineConfig) {
		cfg.company = company
	}
}

// WithHomeState sets the home GST state code used for classification.
func WithHomeState(code string) Option {
	return func(cfg *pipelineConfig) {
		cfg.homeState = code
	}
}

// WithGateway substitutes the gateway client.
func WithGateway(c *gateway.Client) Option {
	return func(cfg *pipelineConfig) {
		cfg.client = c
	}
}

// WithLogger attaches a logger; the default is a nop.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *pipelineConfig) {
		cfg.logger = l
	}
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	cfg := &pipelineConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = gateway.NewClient(gateway.WithLogger(cfg.logger))
	}
	engine := gst.NewEngine(cfg.homeState, cfg.logger)
	return &Pipeline{
		encoder: tally.NewEncoder(cfg.company, engine),
		client:  cfg.client,
		logger:  cfg.logger,
	}
}

// EncodeInvoice renders one invoice record. Missing fields never fail the
// encode; they surface as warnings alongside best-effort output.
func (p *Pipeline) EncodeInvoice(rec *model.InvoiceRecord, ledgers *model.LedgerSet) *Result {
	if rec == nil {
		return &Result{Error: model.NewRecordError("invoice", "record", "record is nil", nil)}
	}

	res := &Result{Warnings: invoiceWarnings(rec)}
	res.XML = p.encoder.EncodeInvoice(rec, ledgers)
	p.logger.Info("encoded invoice",
		zap.String("number", rec.Number),
		zap.Int("items", len(rec.Items)),
		zap.Int("warnings", len(res.Warnings)))
	return res
}

// EncodeBank renders one bank statement.
func (p *Pipeline) EncodeBank(st *model.BankStatement, ledgers *model.LedgerSet) *Result {
	if st == nil {
		return &Result{Error: model.NewRecordError("bank", "statement", "statement is nil", nil)}
	}

	res := &Result{Warnings: bankWarnings(st)}
	res.XML = p.encoder.EncodeBankStatement(st, ledgers)
	p.logger.Info("encoded bank statement",
		zap.String("bank", st.BankLedger),
		zap.Int("transactions", len(st.Transactions)))
	return res
}

// EncodeAndPush encodes a record and sends it to Tally in one step.
// A failed push is reported in the gateway result, not in Error.
func (p *Pipeline) EncodeAndPush(ctx context.Context, rec *model.InvoiceRecord, ledgers *model.LedgerSet) *Result {
	res := p.EncodeInvoice(rec, ledgers)
	if res.Error != nil {
		return res
	}
	gw := p.client.Push(ctx, res.XML)
	res.Gateway = &gw
	return res
}

// Push forwards a prebuilt document to Tally.
func (p *Pipeline) Push(ctx context.Context, xml string) gateway.Result {
	return p.client.Push(ctx, xml)
}

// Status probes the Tally connection.
func (p *Pipeline) Status(ctx context.Context) gateway.Status {
	return p.client.CheckConnection(ctx)
}

// Ledgers fetches the existing ledger names from Tally.
func (p *Pipeline) Ledgers(ctx context.Context) (*model.LedgerSet, error) {
	return p.client.FetchLedgers(ctx)
}

// Companies fetches the companies currently open in Tally.
func (p *Pipeline) Companies(ctx context.Context) ([]string, error) {
	return p.client.FetchCompanies(ctx)
}

func invoiceWarnings(rec *model.InvoiceRecord) []string {
	var w []string
	if rec.Number == "" {
		w = append(w, "invoice number missing")
	}
	if rec.Date == "" {
		w = append(w, "invoice date missing, using today")
	}
	if len(rec.Items) == 0 {
		w = append(w, "no line items")
	}
	if rec.PartyGSTIN() != "" && !gst.Valid(gst.Normalize(rec.PartyGSTIN())) {
		w = append(w, "party GSTIN invalid, treated as unregistered")
	}
	return w
}

func bankWarnings(st *model.BankStatement) []string {
	var w []string
	if st.BankLedger == "" {
		w = append(w, "bank ledger name missing")
	}
	if len(st.Transactions) == 0 {
		w = append(w, "no transactions")
	}
	return w
}
