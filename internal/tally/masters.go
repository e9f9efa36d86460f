package tally

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
)

// invoiceMasters emits the create definitions a voucher depends on.
// Every definition except the base unit and parent group is gated by the
// caller's ledger set: known names are skipped, emitted names are added,
// so re-encoding the same batch never duplicates a master. Tally itself
// treats Create for an existing master as a no-op.
func (e *Encoder) invoiceMasters(rec *model.InvoiceRecord, plan *invoicePlan, ledgers *model.LedgerSet) []*etree.Element {
	sales := rec.IsSales()
	var out []*etree.Element

	// Base unit and parent group are cheap idempotent creates, emitted
	// unconditionally.
	out = append(out, unitMaster(model.DefaultUnit))
	seenUnits := map[string]bool{model.DefaultUnit: true}
	for _, line := range plan.lines {
		if !seenUnits[line.unit] {
			seenUnits[line.unit] = true
			out = append(out, unitMaster(line.unit))
		}
	}
	out = append(out, groupMaster(accountsGroup(sales), "Primary"))

	// Party ledger.
	partyName := CleanName(rec.PartyName())
	if !ledgers.Contains(partyName) {
		ledgers.Add(partyName)
		out = append(out, e.partyMaster(rec, partyName, sales, plan.cls))
	}

	// Stock items, one per distinct line-item description.
	seenItems := map[string]bool{}
	for _, line := range plan.lines {
		if seenItems[line.item] || ledgers.Contains(line.item) {
			continue
		}
		seenItems[line.item] = true
		ledgers.Add(line.item)
		out = append(out, stockItemMaster(line.item, line.unit, line.taxRate))
	}

	// Purchase/sale rate ledgers and their duty ledgers, one set per
	// distinct tax rate.
	for _, b := range plan.buckets {
		if !ledgers.Contains(b.name) {
			ledgers.Add(b.name)
			out = append(out, rateLedgerMaster(b.name, accountsGroup(sales), b.rate))
		}
		for _, duty := range gst.DutyBuckets(b.rate, plan.cls) {
			name := dutyLedgerName(duty.Head, duty.Rate, sales)
			if ledgers.Contains(name) {
				continue
			}
			ledgers.Add(name)
			out = append(out, dutyLedgerMaster(name, duty.Head, duty.Rate))
		}
	}

	return out
}

func tallyMessage() *etree.Element {
	msg := etree.NewElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")
	return msg
}

// master creates a TALLYMESSAGE wrapping one Create definition whose
// NAME attribute and NAME.LIST child carry the same value.
func master(kind, name string) (*etree.Element, *etree.Element) {
	msg := tallyMessage()
	el := msg.CreateElement(kind)
	el.CreateAttr("NAME", Sanitize(name))
	el.CreateAttr("ACTION", "Create")
	nameList := el.CreateElement("NAME.LIST")
	freeChild(nameList, "NAME", name)
	return msg, el
}

func unitMaster(name string) *etree.Element {
	msg := tallyMessage()
	u := msg.CreateElement("UNIT")
	u.CreateAttr("NAME", Sanitize(name))
	u.CreateAttr("ACTION", "Create")
	freeChild(u, "NAME", name)
	child(u, "ISSIMPLEUNIT", "Yes")
	return msg
}

func groupMaster(name, parent string) *etree.Element {
	msg, g := master("GROUP", name)
	child(g, "PARENT", parent)
	return msg
}

func (e *Encoder) partyMaster(rec *model.InvoiceRecord, name string, sales bool, cls gst.Classification) *etree.Element {
	msg, l := master("LEDGER", name)
	child(l, "PARENT", partyGroup(sales))
	child(l, "ISBILLWISEON", "Yes")
	child(l, "ISGSTAPPLICABLE", "Yes")
	gstin := gst.Normalize(rec.PartyGSTIN())
	if gst.Valid(gstin) {
		freeChild(l, "PARTYGSTIN", gstin)
	}
	freeChild(l, "STATENAME", cls.PartyState)
	return msg
}

func stockItemMaster(name, unit string, rate decimal.Decimal) *etree.Element {
	msg, s := master("STOCKITEM", name)
	child(s, "PARENT", "Primary")
	child(s, "BASEUNITS", unit)
	child(s, "OPENINGBALANCE", "0 "+unit)
	child(s, "ISGSTAPPLICABLE", "Yes")
	child(s, "GSTRATE", FormatRate(rate))
	return msg
}

func rateLedgerMaster(name, parent string, rate decimal.Decimal) *etree.Element {
	msg, l := master("LEDGER", name)
	child(l, "PARENT", parent)
	child(l, "ISGSTAPPLICABLE", "Yes")
	child(l, "GSTRATE", FormatRate(rate))
	return msg
}

func dutyLedgerMaster(name string, head gst.DutyHead, rate decimal.Decimal) *etree.Element {
	msg, l := master("LEDGER", name)
	child(l, "PARENT", "Duties & Taxes")
	child(l, "TAXTYPE", "GST")
	child(l, "GSTDUTYHEAD", string(head))
	child(l, "GSTRATE", FormatRate(rate))
	return msg
}
