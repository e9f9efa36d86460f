package tally_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/internal/model"
)

func sampleStatement() *model.BankStatement {
	return &model.BankStatement{
		BankLedger: "HDFC Bank",
		Transactions: []model.BankTransaction{
			{
				Date:         "2025-02-10",
				Description:  "NEFT to vendor",
				Type:         model.BankPayment,
				Debit:        dec("2500"),
				ContraLedger: "Office Rent",
			},
			{
				Date:         "2025-02-12",
				Description:  "Customer transfer",
				Type:         model.BankReceipt,
				Credit:       dec("4000"),
				ContraLedger: "Consulting Income",
			},
		},
	}
}

func bankVouchers(doc *etree.Document) []*etree.Element {
	return doc.FindElements("//REQUESTDATA/TALLYMESSAGE/VOUCHER")
}

func TestEncodeBankStatement_Legs(t *testing.T) {
	enc := newTestEncoder()
	doc := parseDoc(t, enc.EncodeBankStatement(sampleStatement(), model.NewLedgerSet()))

	vouchers := bankVouchers(doc)
	require.Len(t, vouchers, 2)

	payment := vouchers[0]
	assert.Equal(t, "Bank", payment.SelectAttrValue("VCHTYPE", ""))
	assert.Equal(t, "Payment", payment.FindElement("VOUCHERTYPENAME").Text())
	assert.Equal(t, "20250210", payment.FindElement("DATE").Text())

	legs := payment.FindElements("LEDGERENTRIES.LIST")
	require.Len(t, legs, 2)
	assert.Equal(t, "HDFC Bank", legs[0].FindElement("LEDGERNAME").Text())
	assert.Equal(t, "-2500.00", legs[0].FindElement("AMOUNT").Text())
	assert.Equal(t, "Yes", legs[0].FindElement("ISDEEMEDPOSITIVE").Text())
	assert.Equal(t, "Yes", legs[0].FindElement("ISPARTYLEDGER").Text())
	assert.Equal(t, "Office Rent", legs[1].FindElement("LEDGERNAME").Text())
	assert.Equal(t, "2500.00", legs[1].FindElement("AMOUNT").Text())
	assert.Equal(t, "No", legs[1].FindElement("ISDEEMEDPOSITIVE").Text())

	receipt := vouchers[1]
	assert.Equal(t, "Receipt", receipt.FindElement("VOUCHERTYPENAME").Text())
	legs = receipt.FindElements("LEDGERENTRIES.LIST")
	require.Len(t, legs, 2)
	assert.Equal(t, "4000.00", legs[0].FindElement("AMOUNT").Text())
	assert.Equal(t, "No", legs[0].FindElement("ISDEEMEDPOSITIVE").Text())
	assert.Equal(t, "-4000.00", legs[1].FindElement("AMOUNT").Text())
}

func TestEncodeBankStatement_ContraPrefersCredit(t *testing.T) {
	st := &model.BankStatement{
		BankLedger: "HDFC Bank",
		Transactions: []model.BankTransaction{
			{
				Date:         "2025-02-15",
				Type:         model.BankContra,
				Debit:        dec("100"),
				Credit:       dec("900"),
				ContraLedger: "Cash",
			},
			{
				Date:         "2025-02-16",
				Type:         model.BankContra,
				Debit:        dec("300"),
				ContraLedger: "Cash",
			},
		},
	}

	enc := newTestEncoder()
	doc := parseDoc(t, enc.EncodeBankStatement(st, model.NewLedgerSet()))

	vouchers := bankVouchers(doc)
	require.Len(t, vouchers, 2)
	assert.Equal(t, "900.00",
		vouchers[0].FindElement("LEDGERENTRIES.LIST/AMOUNT").Text())
	assert.Equal(t, "-300.00",
		vouchers[1].FindElement("LEDGERENTRIES.LIST/AMOUNT").Text())
}

func TestEncodeBankStatement_ZeroAmountRowSkipped(t *testing.T) {
	st := &model.BankStatement{
		BankLedger: "HDFC Bank",
		Transactions: []model.BankTransaction{
			{Date: "2025-02-17", Type: model.BankPayment, ContraLedger: "Misc"},
		},
	}

	enc := newTestEncoder()
	doc := parseDoc(t, enc.EncodeBankStatement(st, model.NewLedgerSet()))

	assert.Empty(t, bankVouchers(doc))
}

func TestEncodeBankStatement_Masters(t *testing.T) {
	enc := newTestEncoder()
	ledgers := model.NewLedgerSet()
	doc := parseDoc(t, enc.EncodeBankStatement(sampleStatement(), ledgers))

	parents := map[string]string{}
	for _, l := range doc.FindElements("//TALLYMESSAGE/LEDGER") {
		parents[l.SelectAttrValue("NAME", "")] = l.FindElement("PARENT").Text()
	}
	assert.Equal(t, map[string]string{
		"HDFC Bank":         "Bank Accounts",
		"Office Rent":       "Suspense A/c",
		"Consulting Income": "Suspense A/c",
	}, parents)

	// A second encode against the same set emits no masters.
	again := parseDoc(t, enc.EncodeBankStatement(sampleStatement(), ledgers))
	assert.Empty(t, again.FindElements("//TALLYMESSAGE/LEDGER"))
}

func TestEncodeBankStatement_UnparseableDateRendersEmpty(t *testing.T) {
	st := &model.BankStatement{
		BankLedger: "HDFC Bank",
		Transactions: []model.BankTransaction{
			{
				Date:         "Feb 10",
				Type:         model.BankReceipt,
				Credit:       dec("50"),
				ContraLedger: "Misc Income",
			},
		},
	}

	enc := newTestEncoder()
	doc := parseDoc(t, enc.EncodeBankStatement(st, model.NewLedgerSet()))

	v := bankVouchers(doc)[0]
	assert.Equal(t, "", v.FindElement("DATE").Text())
}
