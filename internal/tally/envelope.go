package tally

import (
	"github.com/beevik/etree"
)

// renderEnvelope wraps masters and vouchers in the fixed import
// skeleton: an Import Data header and two IMPORTDATA blocks, "All
// Masters" first, "Vouchers" second, each scoped to the target company.
// Serialization is a single etree pass, so every text node is entity
// escaped exactly once (ampersand first by construction).
func renderEnvelope(company string, masters, vouchers []*etree.Element) string {
	doc := etree.NewDocument()
	env := doc.CreateElement("ENVELOPE")

	header := env.CreateElement("HEADER")
	header.CreateElement("TALLYREQUEST").SetText("Import Data")

	body := env.CreateElement("BODY")
	body.AddChild(importBlock("All Masters", company, masters))
	body.AddChild(importBlock("Vouchers", company, vouchers))

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		// WriteToString writes to an in-memory buffer and cannot fail.
		return ""
	}
	return out
}

func importBlock(report, company string, payload []*etree.Element) *etree.Element {
	imp := etree.NewElement("IMPORTDATA")

	desc := imp.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText(report)
	staticVars := desc.CreateElement("STATICVARIABLES")
	freeChild(staticVars, "SVCURRENTCOMPANY", company)

	data := imp.CreateElement("REQUESTDATA")
	for _, el := range payload {
		data.AddChild(el)
	}
	return imp
}

// child appends a tag with fixed literal text.
func child(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

// freeChild appends a tag carrying free text: apostrophes are replaced
// before the text enters the tree, entities are escaped at render time.
func freeChild(parent *etree.Element, tag, text string) *etree.Element {
	return child(parent, tag, Sanitize(text))
}
