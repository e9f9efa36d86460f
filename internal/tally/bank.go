package tally

import (
	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/money"
)

// EncodeBankStatement renders a bank statement as one import document:
// ledger masters for the bank and contra accounts, then one two-legged
// voucher per transaction.
func (e *Encoder) EncodeBankStatement(st *model.BankStatement, ledgers *model.LedgerSet) string {
	if ledgers == nil {
		ledgers = model.NewLedgerSet()
	}

	bankName := CleanName(st.BankLedger)

	var masters []*etree.Element
	if !ledgers.Contains(bankName) {
		ledgers.Add(bankName)
		masters = append(masters, bankLedgerMaster(bankName, "Bank Accounts"))
	}

	var vouchers []*etree.Element
	for _, tx := range st.Transactions {
		contraName := CleanName(tx.ContraLedger)
		if !ledgers.Contains(contraName) {
			ledgers.Add(contraName)
			// Unclassified contra accounts land in Suspense A/c; an
			// accountant regroups them inside Tally.
			masters = append(masters, bankLedgerMaster(contraName, "Suspense A/c"))
		}

		bankLeg, ok := bankLegAmount(tx)
		if !ok {
			continue
		}
		vouchers = append(vouchers, bankVoucher(tx, bankName, contraName, bankLeg))
	}

	return renderEnvelope(e.company, masters, vouchers)
}

// bankLegAmount resolves the signed amount posted to the bank ledger.
// Payments draw the debit column, receipts the credit column; contra
// rows prefer credit and fall back to debit. Rows with no usable amount
// are skipped.
func bankLegAmount(tx model.BankTransaction) (decimal.Decimal, bool) {
	debit := money.Round(tx.Debit.Abs())
	credit := money.Round(tx.Credit.Abs())

	switch tx.Type {
	case model.BankPayment:
		if debit.IsZero() {
			return money.Zero, false
		}
		return debit.Neg(), true
	case model.BankReceipt:
		if credit.IsZero() {
			return money.Zero, false
		}
		return credit, true
	case model.BankContra:
		if !credit.IsZero() {
			return credit, true
		}
		if !debit.IsZero() {
			return debit.Neg(), true
		}
		return money.Zero, false
	default:
		return money.Zero, false
	}
}

func bankVoucher(tx model.BankTransaction, bankName, contraName string, bankLeg decimal.Decimal) *etree.Element {
	contraLeg := bankLeg.Neg()
	dateXML := BankDate(tx.Date)

	msg := tallyMessage()
	v := msg.CreateElement("VOUCHER")
	v.CreateAttr("REMOTEID", uuid.NewString())
	v.CreateAttr("VCHKEY", uuid.NewString()+":00000008")
	v.CreateAttr("VCHTYPE", "Bank")
	v.CreateAttr("ACTION", "Create")

	child(v, "DATE", dateXML)
	child(v, "EFFECTIVEDATE", dateXML)
	child(v, "GUID", uuid.NewString())
	child(v, "VOUCHERTYPENAME", string(tx.Type))
	freeChild(v, "PARTYLEDGERNAME", bankName)
	freeChild(v, "NARRATION", tx.Description)

	bank := v.CreateElement("LEDGERENTRIES.LIST")
	freeChild(bank, "LEDGERNAME", bankName)
	child(bank, "ISDEEMEDPOSITIVE", yesNo(bankLeg.IsNegative()))
	child(bank, "ISPARTYLEDGER", "Yes")
	child(bank, "AMOUNT", money.Amount(bankLeg))

	contra := v.CreateElement("LEDGERENTRIES.LIST")
	freeChild(contra, "LEDGERNAME", contraName)
	child(contra, "ISDEEMEDPOSITIVE", yesNo(contraLeg.IsNegative()))
	child(contra, "ISPARTYLEDGER", "No")
	child(contra, "AMOUNT", money.Amount(contraLeg))

	return msg
}

func bankLedgerMaster(name, parent string) *etree.Element {
	msg, l := master("LEDGER", name)
	child(l, "PARENT", parent)
	return msg
}
