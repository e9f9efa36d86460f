package model

import (
	"github.com/shopspring/decimal"
)

// Direction selects the side of the books a voucher lands on.
type Direction string

const (
	DirectionPurchase Direction = "Purchase"
	DirectionSales    Direction = "Sales"
)

// Defaults substituted for missing record fields. Encoding never fails on
// absent data; it produces best-effort, syntactically valid output instead.
const (
	DefaultPurchaseParty = "Cash Party"
	DefaultSalesParty    = "Cash Buyer"
	DefaultTaxRate       = 18
	DefaultStateName     = "Maharashtra"
	DefaultHomeState     = "27"
	DefaultUnit          = "Nos"
	DefaultCompany       = "##SVCurrentCompany"
	UnnamedLedger        = "Unnamed"
	UnknownItem          = "Unknown Item"
)

// InvoiceRecord is the normalized invoice handed over by the upstream
// extraction collaborator. All defaulting happens inside the codec; the
// record itself carries whatever was extracted, including empty fields.
type InvoiceRecord struct {
	Number        string     `json:"invoiceNumber"`
	Date          string     `json:"invoiceDate"`
	SupplierName  string     `json:"supplierName"`
	SupplierGSTIN string     `json:"supplierGSTIN"`
	BuyerName     string     `json:"buyerName"`
	BuyerGSTIN    string     `json:"buyerGSTIN"`
	Direction     Direction  `json:"direction,omitempty"`
	Items         []LineItem `json:"items"`
}

// IsSales reports whether the record posts to the sales side.
// An unset direction means purchase.
func (r *InvoiceRecord) IsSales() bool {
	return r.Direction == DirectionSales
}

// PartyName returns the counter-party name for the record's direction,
// falling back to the cash-party placeholder when absent.
func (r *InvoiceRecord) PartyName() string {
	if r.IsSales() {
		if r.BuyerName != "" {
			return r.BuyerName
		}
		return DefaultSalesParty
	}
	if r.SupplierName != "" {
		return r.SupplierName
	}
	return DefaultPurchaseParty
}

// PartyGSTIN returns the registration number of the counter-party for the
// record's direction.
func (r *InvoiceRecord) PartyGSTIN() string {
	if r.IsSales() {
		return r.BuyerGSTIN
	}
	return r.SupplierGSTIN
}

// LineItem is one invoice line. Ordering is insertion order and is
// preserved in the rendered inventory list.
//
// TaxRate is a pointer so an explicitly zero-rated line can be told apart
// from a line where the collaborator omitted the rate: nil defaults to
// 18%, an explicit 0 stays zero-rated (bucket entry, no duty entries).
type LineItem struct {
	Description string           `json:"description"`
	HSNCode     string           `json:"hsnCode,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      decimal.Decimal  `json:"amount"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
	Unit        string           `json:"unit,omitempty"`
}

// EffectiveQuantity returns the quantity, defaulting to 1 when unset.
func (li *LineItem) EffectiveQuantity() decimal.Decimal {
	if li.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return li.Quantity
}

// EffectiveTaxRate returns the tax rate, defaulting to 18% when absent.
func (li *LineItem) EffectiveTaxRate() decimal.Decimal {
	if li.TaxRate == nil {
		return decimal.NewFromInt(DefaultTaxRate)
	}
	return *li.TaxRate
}

// BankTransactionType classifies a bank-statement row.
type BankTransactionType string

const (
	BankPayment BankTransactionType = "Payment"
	BankReceipt BankTransactionType = "Receipt"
	BankContra  BankTransactionType = "Contra"
)

// BankTransaction is one normalized bank-statement row. Debit and credit
// are mutually exclusive in practice but both are carried; the encoder
// picks the leg amounts by Type.
type BankTransaction struct {
	Date         string              `json:"date"`
	Description  string              `json:"description"`
	Type         BankTransactionType `json:"type"`
	Debit        decimal.Decimal     `json:"debit"`
	Credit       decimal.Decimal     `json:"credit"`
	ContraLedger string              `json:"contraLedger"`
}

// BankStatement groups transactions posted against one bank ledger.
type BankStatement struct {
	BankLedger   string            `json:"bankLedger"`
	Transactions []BankTransaction `json:"transactions"`
}
