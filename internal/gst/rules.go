// Package gst classifies transactions as intra- or inter-state from the
// parties' GST registration numbers and computes the duty buckets each
// tax rate routes into.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/money"
)

// GSTINLength is the fixed length of a valid registration number.
const GSTINLength = 15

// DutyHead identifies the Tally duty ledger group a tax bucket posts to.
type DutyHead string

const (
	DutyCentral    DutyHead = "Central Tax"
	DutyState      DutyHead = "State Tax"
	DutyIntegrated DutyHead = "Integrated Tax"
)

// Engine resolves state codes and the intra/inter-state decision.
// The zero value is not usable; use NewEngine.
type Engine struct {
	homeState string
	logger    *zap.Logger
}

// NewEngine creates an engine with the given home jurisdiction code.
// An empty code falls back to the default home state.
func NewEngine(homeState string, logger *zap.Logger) *Engine {
	if homeState == "" {
		homeState = defaultHomeState
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{homeState: homeState, logger: logger}
}

const (
	defaultHomeState = "27"
	defaultStateName = "Maharashtra"
)

// Normalize trims and upper-cases a registration number.
func Normalize(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// Valid reports whether a registration number has the required 15
// characters. Anything else is treated as absent.
func Valid(gstin string) bool {
	return len(Normalize(gstin)) == GSTINLength
}

// StateCode returns the two-character state code of a valid registration
// number, or the engine's home state when the number is invalid.
func (e *Engine) StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) != GSTINLength {
		return e.homeState
	}
	return g[:2]
}

// StateName resolves the state name for a registration number. Unknown
// codes fall back to the default region; that is worth a warning but
// never fatal.
func (e *Engine) StateName(gstin string) string {
	g := Normalize(gstin)
	if len(g) != GSTINLength {
		return defaultStateName
	}
	name, ok := stateNames[g[:2]]
	if !ok {
		e.logger.Warn("unknown GSTIN state code, using default state",
			zap.String("code", g[:2]))
		return defaultStateName
	}
	return name
}

// Classification is the outcome of the intra/inter-state decision for one
// record.
type Classification struct {
	InterState bool
	PartyState string // resolved state name of the counter-party
}

// Classify compares the supplier and buyer state codes, each defaulting
// to the home state when the registration number is invalid. The
// transaction is inter-state iff the two codes differ.
func (e *Engine) Classify(supplierGSTIN, buyerGSTIN string, sales bool) Classification {
	sCode := e.StateCode(supplierGSTIN)
	bCode := e.StateCode(buyerGSTIN)

	partyGSTIN := supplierGSTIN
	if sales {
		partyGSTIN = buyerGSTIN
	}

	return Classification{
		InterState: sCode != bCode,
		PartyState: e.StateName(partyGSTIN),
	}
}

// Bucket is one duty ledger a line's tax routes into.
type Bucket struct {
	Head DutyHead
	Rate decimal.Decimal // duty rate: full for IGST, half for CGST/SGST
}

// DutyBuckets returns the duty buckets for a tax rate under the given
// classification: one Integrated bucket at the full rate inter-state, or
// a Central+State pair at half rate each intra-state. A zero rate has no
// buckets. The two outcomes are mutually exclusive per rate bucket.
func DutyBuckets(rate decimal.Decimal, c Classification) []Bucket {
	if rate.IsZero() {
		return nil
	}
	if c.InterState {
		return []Bucket{{Head: DutyIntegrated, Rate: rate}}
	}
	half := rate.Div(decimal.NewFromInt(2))
	return []Bucket{
		{Head: DutyCentral, Rate: half},
		{Head: DutyState, Rate: half},
	}
}

// SplitTax divides a line's tax across the classification's buckets,
// preserving the amount exactly: inter-state keeps the full tax on the
// Integrated bucket; intra-state takes a rounded half for Central and
// the subtraction remainder for State.
func SplitTax(tax decimal.Decimal, c Classification) (central, state, integrated decimal.Decimal) {
	if c.InterState {
		return money.Zero, money.Zero, tax
	}
	half, remainder := money.SplitHalf(tax)
	return half, remainder, money.Zero
}
