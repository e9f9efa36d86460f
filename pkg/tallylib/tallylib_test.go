package tallylib_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/pkg/tallylib"
)

func sampleInvoice() *tallylib.InvoiceRecord {
	rate := decimal.NewFromInt(18)
	return &tallylib.InvoiceRecord{
		Number:        "INV-100",
		Date:          "2025-05-01",
		SupplierName:  "Acme Traders",
		SupplierGSTIN: "27ABGPY9844H1ZV",
		Items: []tallylib.LineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100), TaxRate: &rate},
		},
	}
}

func TestEncodeInvoice(t *testing.T) {
	enc := tallylib.NewEncoder(tallylib.Options{Company: "Test Co"})
	res := enc.EncodeInvoice(sampleInvoice(), tallylib.NewLedgerSet())

	require.NoError(t, res.Error)
	assert.Contains(t, res.XML, "<SVCURRENTCOMPANY>Test Co</SVCURRENTCOMPANY>")
	assert.Contains(t, res.XML, "INV-100")
}

func TestEncodeBankStatement(t *testing.T) {
	st := &tallylib.BankStatement{
		BankLedger: "SBI",
		Transactions: []tallylib.BankTransaction{
			{Date: "2025-05-02", Type: tallylib.BankPayment, Debit: decimal.NewFromInt(75), ContraLedger: "Rent"},
		},
	}

	enc := tallylib.NewEncoder(tallylib.Options{})
	res := enc.EncodeBankStatement(st, tallylib.NewLedgerSet())

	require.NoError(t, res.Error)
	assert.Contains(t, res.XML, `VCHTYPE="Bank"`)
}

func TestEncodeAndPush(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<CREATED>1</CREATED>")
	}))
	defer srv.Close()

	enc := tallylib.NewEncoder(tallylib.Options{TallyURL: srv.URL})
	res := enc.EncodeAndPush(context.Background(), sampleInvoice(), tallylib.NewLedgerSet())

	require.NoError(t, res.Error)
	require.NotNil(t, res.Gateway)
	assert.True(t, res.Gateway.Success)
}
