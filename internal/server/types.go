package server

import (
	"github.com/rezonia/tally-bridge/internal/gateway"
	"github.com/rezonia/tally-bridge/internal/model"
)

// EncodeInvoiceRequest is the request body for POST /api/v1/encode/invoice.
// KnownLedgers seeds master dedup; Push sends the rendered document to
// Tally in the same call.
type EncodeInvoiceRequest struct {
	Record       *model.InvoiceRecord `json:"record"`
	KnownLedgers []string             `json:"knownLedgers,omitempty"`
	Push         bool                 `json:"push,omitempty"`
}

// EncodeBankRequest is the request body for POST /api/v1/encode/bank.
type EncodeBankRequest struct {
	Statement    *model.BankStatement `json:"statement"`
	KnownLedgers []string             `json:"knownLedgers,omitempty"`
	Push         bool                 `json:"push,omitempty"`
}

// EncodeResponse carries the rendered document plus the ledger names
// known after the encode, for the client to feed back into the next call.
type EncodeResponse struct {
	XML      string          `json:"xml"`
	Warnings []string        `json:"warnings,omitempty"`
	Gateway  *gateway.Result `json:"gateway,omitempty"`
	Ledgers  []string        `json:"ledgers"`
}

// LedgersResponse is the response for GET /api/v1/tally/ledgers.
type LedgersResponse struct {
	Ledgers []string `json:"ledgers"`
	Count   int      `json:"count"`
}

// CompaniesResponse is the response for GET /api/v1/tally/companies.
type CompaniesResponse struct {
	Companies []string `json:"companies"`
}
