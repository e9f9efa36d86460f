package tally

import (
	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/money"
)

// Encoder turns normalized records into Tally import XML. It is
// stateless between calls; the only mutation is the caller-supplied
// ledger set, appended to as masters are emitted.
type Encoder struct {
	company string
	engine  *gst.Engine
}

// NewEncoder creates an encoder targeting the given company. An empty
// company uses Tally's current-company placeholder; a nil engine gets
// the default home jurisdiction.
func NewEncoder(company string, engine *gst.Engine) *Encoder {
	if company == "" {
		company = model.DefaultCompany
	}
	if engine == nil {
		engine = gst.NewEngine("", nil)
	}
	return &Encoder{company: company, engine: engine}
}

// rateBucket is one purchase/sale rate ledger the voucher posts to
// through its inventory accounting allocations.
type rateBucket struct {
	rate decimal.Decimal
	name string
}

// dutyTotal accumulates the tax amount posted to one duty ledger.
type dutyTotal struct {
	name   string
	amount decimal.Decimal
}

// inventoryLine is one rendered ALLINVENTORYENTRIES.LIST block.
type inventoryLine struct {
	item    string
	unit    string
	qty     decimal.Decimal
	rate    decimal.Decimal
	amount  decimal.Decimal
	taxRate decimal.Decimal
	bucket  string
}

// invoicePlan is the fully accumulated state for one voucher: buckets
// and duties in first-seen order, inventory lines in insertion order.
type invoicePlan struct {
	cls     gst.Classification
	buckets []*rateBucket
	duties  []*dutyTotal
	lines   []inventoryLine
	total   decimal.Decimal
}

func (p *invoicePlan) bucket(rate decimal.Decimal, sales bool) *rateBucket {
	name := rateLedgerName(rate, sales)
	for _, b := range p.buckets {
		if b.name == name {
			return b
		}
	}
	b := &rateBucket{rate: rate, name: name}
	p.buckets = append(p.buckets, b)
	return b
}

func (p *invoicePlan) duty(name string) *dutyTotal {
	for _, d := range p.duties {
		if d.name == name {
			return d
		}
	}
	d := &dutyTotal{name: name, amount: money.Zero}
	p.duties = append(p.duties, d)
	return d
}

// computeInvoice walks the line items once, accumulating rate buckets,
// duty totals and inventory lines. Zero-amount lines are skipped
// entirely; zero-rate lines contribute a bucket but no duties.
func (e *Encoder) computeInvoice(rec *model.InvoiceRecord) *invoicePlan {
	sales := rec.IsSales()
	plan := &invoicePlan{
		cls:   e.engine.Classify(rec.SupplierGSTIN, rec.BuyerGSTIN, sales),
		total: money.Zero,
	}

	for _, li := range rec.Items {
		qty := li.EffectiveQuantity()
		amount := money.LineAmount(qty, li.Rate)
		if amount.IsZero() {
			amount = money.Round(li.Amount)
		}
		if amount.IsZero() {
			continue
		}

		taxRate := li.EffectiveTaxRate()
		bucket := plan.bucket(taxRate, sales)
		plan.total = plan.total.Add(amount)

		unit := li.Unit
		if unit == "" {
			unit = model.DefaultUnit
		}
		plan.lines = append(plan.lines, inventoryLine{
			item:    stockItemName(li.Description),
			unit:    unit,
			qty:     qty,
			rate:    li.Rate,
			amount:  amount,
			taxRate: taxRate,
			bucket:  bucket.name,
		})

		tax := money.Tax(amount, taxRate)
		if tax.IsZero() {
			continue
		}
		plan.total = plan.total.Add(tax)

		central, state, integrated := gst.SplitTax(tax, plan.cls)
		if plan.cls.InterState {
			d := plan.duty(dutyLedgerName(gst.DutyIntegrated, taxRate, sales))
			d.amount = d.amount.Add(integrated)
		} else {
			halfRate := taxRate.Div(decimal.NewFromInt(2))
			cgst := plan.duty(dutyLedgerName(gst.DutyCentral, halfRate, sales))
			sgst := plan.duty(dutyLedgerName(gst.DutyState, halfRate, sales))
			cgst.amount = cgst.amount.Add(central)
			sgst.amount = sgst.amount.Add(state)
		}
	}

	return plan
}

// EncodeInvoice renders one invoice record as a complete import
// document: masters (gated by the ledger set) followed by one voucher.
func (e *Encoder) EncodeInvoice(rec *model.InvoiceRecord, ledgers *model.LedgerSet) string {
	if ledgers == nil {
		ledgers = model.NewLedgerSet()
	}
	plan := e.computeInvoice(rec)
	masters := e.invoiceMasters(rec, plan, ledgers)
	voucher := e.invoiceVoucher(rec, plan)
	return renderEnvelope(e.company, masters, []*etree.Element{voucher})
}

func (e *Encoder) invoiceVoucher(rec *model.InvoiceRecord, plan *invoicePlan) *etree.Element {
	sales := rec.IsSales()
	vchType := "Purchase"
	if sales {
		vchType = "Sales"
	}

	// Purchase: party credits (positive), buckets and duties debit
	// (negative). Sales inverts every sign.
	itemSign := decimal.NewFromInt(-1)
	partySign := decimal.NewFromInt(1)
	if sales {
		itemSign, partySign = partySign, itemSign
	}

	partyName := CleanName(rec.PartyName())
	partyGSTIN := gst.Normalize(rec.PartyGSTIN())
	if !gst.Valid(partyGSTIN) {
		partyGSTIN = ""
	}
	dateXML := FormatDate(rec.Date)

	msg := tallyMessage()
	v := msg.CreateElement("VOUCHER")
	v.CreateAttr("REMOTEID", uuid.NewString())
	v.CreateAttr("VCHKEY", uuid.NewString()+":00000008")
	v.CreateAttr("VCHTYPE", vchType)
	v.CreateAttr("ACTION", "Create")
	v.CreateAttr("OBJVIEW", "Invoice Voucher View")

	audit := v.CreateElement("OLDAUDITENTRYIDS.LIST")
	audit.CreateAttr("TYPE", "Number")
	audit.CreateElement("OLDAUDITENTRYIDS").SetText("-1")

	child(v, "DATE", dateXML)
	child(v, "EFFECTIVEDATE", dateXML)
	child(v, "REFERENCEDATE", dateXML)
	child(v, "VCHSTATUSDATE", dateXML)
	child(v, "GUID", uuid.NewString())

	freeChild(v, "STATENAME", plan.cls.PartyState)
	child(v, "COUNTRYOFRESIDENCE", "India")
	if partyGSTIN != "" {
		freeChild(v, "PARTYGSTIN", partyGSTIN)
	}
	freeChild(v, "PLACEOFSUPPLY", plan.cls.PartyState)

	child(v, "VOUCHERTYPENAME", vchType)
	freeChild(v, "PARTYLEDGERNAME", partyName)
	freeChild(v, "VOUCHERNUMBER", rec.Number)
	freeChild(v, "REFERENCE", rec.Number)
	freeChild(v, "BASICBUYERNAME", rec.BuyerName)
	child(v, "ISINVOICE", "Yes")
	freeChild(v, "NARRATION", "Invoice No: "+rec.Number+" | Date: "+rec.Date)

	// Postings in the order the invoice voucher view expects: party
	// first, then the inventory lines whose accounting allocations carry
	// the purchase/sale bucket amounts, then duty ledgers. Tally sums
	// allocations and ledger entries alike, so a bucket never also
	// appears as a top-level ledger entry.
	partyAmount := money.Round(plan.total).Mul(partySign)
	party := v.CreateElement("LEDGERENTRIES.LIST")
	freeChild(party, "LEDGERNAME", partyName)
	child(party, "ISDEEMEDPOSITIVE", yesNo(sales))
	child(party, "ISPARTYLEDGER", "Yes")
	child(party, "AMOUNT", money.Amount(partyAmount))
	bill := party.CreateElement("BILLALLOCATIONS.LIST")
	freeChild(bill, "NAME", rec.Number)
	child(bill, "BILLTYPE", "New Ref")
	child(bill, "AMOUNT", money.Amount(partyAmount))

	for _, line := range plan.lines {
		inv := v.CreateElement("ALLINVENTORYENTRIES.LIST")
		freeChild(inv, "STOCKITEMNAME", line.item)
		child(inv, "ISDEEMEDPOSITIVE", yesNo(!sales))
		child(inv, "ACTUALQTY", line.qty.String()+" "+line.unit)
		child(inv, "BILLEDQTY", line.qty.String()+" "+line.unit)
		child(inv, "RATE", line.rate.StringFixed(2)+"/"+line.unit)
		child(inv, "AMOUNT", money.Amount(line.amount.Mul(itemSign)))
		alloc := inv.CreateElement("ACCOUNTINGALLOCATIONS.LIST")
		freeChild(alloc, "LEDGERNAME", line.bucket)
		child(alloc, "ISDEEMEDPOSITIVE", yesNo(!sales))
		child(alloc, "AMOUNT", money.Amount(line.amount.Mul(itemSign)))
	}

	for _, d := range plan.duties {
		amt := money.Round(d.amount)
		if !money.IsPositive(amt) {
			continue
		}
		entry := v.CreateElement("LEDGERENTRIES.LIST")
		freeChild(entry, "LEDGERNAME", d.name)
		child(entry, "ISDEEMEDPOSITIVE", yesNo(!sales))
		child(entry, "ISPARTYLEDGER", "No")
		child(entry, "AMOUNT", money.Amount(amt.Mul(itemSign)))
	}

	return msg
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
