package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/tally-bridge/internal/model"
)

func TestInvoiceRecord_PartyName(t *testing.T) {
	rec := model.InvoiceRecord{SupplierName: "Acme", BuyerName: "Own Co"}

	assert.Equal(t, "Acme", rec.PartyName())

	rec.Direction = model.DirectionSales
	assert.Equal(t, "Own Co", rec.PartyName())

	empty := model.InvoiceRecord{}
	assert.Equal(t, "Cash Party", empty.PartyName())
	empty.Direction = model.DirectionSales
	assert.Equal(t, "Cash Buyer", empty.PartyName())
}

func TestInvoiceRecord_PartyGSTIN(t *testing.T) {
	rec := model.InvoiceRecord{SupplierGSTIN: "27A", BuyerGSTIN: "29B"}

	assert.Equal(t, "27A", rec.PartyGSTIN())
	rec.Direction = model.DirectionSales
	assert.Equal(t, "29B", rec.PartyGSTIN())
}

func TestInvoiceRecord_IsSalesDefaultsPurchase(t *testing.T) {
	assert.False(t, (&model.InvoiceRecord{}).IsSales())
	assert.True(t, (&model.InvoiceRecord{Direction: model.DirectionSales}).IsSales())
}

func TestLineItem_EffectiveQuantity(t *testing.T) {
	li := model.LineItem{}
	assert.True(t, li.EffectiveQuantity().Equal(decimal.NewFromInt(1)))

	li.Quantity = decimal.NewFromInt(7)
	assert.True(t, li.EffectiveQuantity().Equal(decimal.NewFromInt(7)))
}

func TestLineItem_EffectiveTaxRate(t *testing.T) {
	li := model.LineItem{}
	assert.True(t, li.EffectiveTaxRate().Equal(decimal.NewFromInt(18)))

	zero := decimal.Zero
	li.TaxRate = &zero
	assert.True(t, li.EffectiveTaxRate().IsZero(),
		"explicit zero rate must not fall back to the default")

	five := decimal.NewFromInt(5)
	li.TaxRate = &five
	assert.True(t, li.EffectiveTaxRate().Equal(five))
}

func TestLedgerSet(t *testing.T) {
	s := model.NewLedgerSet("Cash", "HDFC Bank")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("Cash"))
	assert.False(t, s.Contains("Petty Cash"))

	s.Add("Petty Cash")
	s.Add("Cash") // no-op
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"Cash", "HDFC Bank", "Petty Cash"}, s.Names())
}
