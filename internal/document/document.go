package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindReceipt    Kind = "RECEIPT"
	KindInvoice    Kind = "INVOICE"
	KindCreditNote Kind = "CREDIT_NOTE"
	KindVault      Kind = "VAULT"
	KindBank       Kind = "BANK"
	KindStatement  Kind = "STATEMENT"
	KindATM        Kind = "ATM"
)

// IsSale reports whether the kind belongs to the receipt/invoice family.
func (k Kind) IsSale() bool {
	return k == KindReceipt || k == KindInvoice || k == KindCreditNote
}

// Taxable reports whether records of this kind carry a non-fixed tax amount.
func (k Kind) Taxable() bool {
	return k.IsSale()
}

type Mode string

const (
	ModeManual    Mode = "MANUAL"
	ModeAutomated Mode = "AUTOMATED"
)

// ParseMode accepts the canonical names plus the short "auto" alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MANUAL":
		return ModeManual, nil
	case "AUTO", "AUTOMATED":
		return ModeAutomated, nil
	}

	return "", fmt.Errorf("%w: unknown mode %q", ErrConfiguration, s)
}

// Record is one fully resolved synthetic document. Records are values: every
// change produces a new Record and bodies are copied, never shared.
type Record struct {
	Kind        Kind
	Counterpart string
	Address     string
	Date        time.Time
	Total       decimal.Decimal
	Tax         decimal.Decimal
	Body        Body
}

// Subtotal is the total net of tax.
func (r Record) Subtotal() decimal.Decimal {
	return r.Total.Sub(r.Tax)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.Body != nil {
		r.Body = r.Body.clone()
	}

	return r
}

func (r Record) Sale() (*SaleBody, bool) {
	b, ok := r.Body.(*SaleBody)
	return b, ok
}

func (r Record) Bank() (*BankBody, bool) {
	b, ok := r.Body.(*BankBody)
	return b, ok
}

func (r Record) Statement() (*StatementBody, bool) {
	b, ok := r.Body.(*StatementBody)
	return b, ok
}

func (r Record) Vault() (*VaultBody, bool) {
	b, ok := r.Body.(*VaultBody)
	return b, ok
}

func (r Record) ATM() (*ATMBody, bool) {
	b, ok := r.Body.(*ATMBody)
	return b, ok
}

// Body is the kind-specific part of a Record. The set of implementations is
// closed; each variant carries exactly the fields its kind uses.
type Body interface {
	accepts(k Kind) bool
	clone() Body
}

type GoodsLine struct {
	Description string
	Quantity    int
	Amount      decimal.Decimal
}

// SaleBody backs receipts, invoices, credit notes and linked invoices.
type SaleBody struct {
	Lines              []GoodsLine
	Issuer             string
	BillTo             string
	DueDate            *time.Time
	PONumber           *string
	AuthCode           string
	OriginalInvoiceRef *string
	Linked             bool
}

func (b *SaleBody) accepts(k Kind) bool { return k.IsSale() }

func (b *SaleBody) clone() Body {
	c := *b
	c.Lines = append([]GoodsLine(nil), b.Lines...)

	if b.DueDate != nil {
		c.DueDate = new(*b.DueDate)
	}

	if b.PONumber != nil {
		c.PONumber = new(*b.PONumber)
	}

	if b.OriginalInvoiceRef != nil {
		c.OriginalInvoiceRef = new(*b.OriginalInvoiceRef)
	}

	return &c
}

// BankTransaction is a single statement row. Exactly one of Debit and Credit is valid.
type BankTransaction struct {
	Date        time.Time
	Description string
	Debit       decimal.NullDecimal
	Credit      decimal.NullDecimal
	Balance     decimal.Decimal
}

// Amount returns the signed movement of the row.
func (t BankTransaction) Amount() decimal.Decimal {
	if t.Credit.Valid {
		return t.Credit.Decimal
	}

	return t.Debit.Decimal.Neg()
}

type BankBody struct {
	Transactions   []BankTransaction
	AccountNumber  string
	AccountName    string
	SortCode       string
	OpeningBalance decimal.Decimal
}

func (b *BankBody) accepts(k Kind) bool { return k == KindBank }

func (b *BankBody) clone() Body {
	c := *b
	c.Transactions = append([]BankTransaction(nil), b.Transactions...)

	return &c
}

// InvoiceRef is an outstanding invoice listed on a supplier statement.
type InvoiceRef struct {
	Date        time.Time
	Reference   string
	Amount      decimal.Decimal
	Description string
}

type StatementBody struct {
	Lines        []InvoiceRef
	CustomerRef  string
	CustomerName string
}

func (b *StatementBody) accepts(k Kind) bool { return k == KindStatement }

func (b *StatementBody) clone() Body {
	c := *b
	c.Lines = append([]InvoiceRef(nil), b.Lines...)

	return &c
}

type VaultBody struct {
	SubType      string
	Title        string
	Paragraphs   []string
	PolicyNumber string
	Reference    string
}

func (b *VaultBody) accepts(k Kind) bool { return k == KindVault }

func (b *VaultBody) clone() Body {
	c := *b
	c.Paragraphs = append([]string(nil), b.Paragraphs...)

	return &c
}

type ATMBody struct {
	Location         string
	MachineID        string
	CardType         string
	MaskedAccount    string
	AuthCode         string
	TransactionRef   string
	Withdrawal       decimal.Decimal
	Surcharge        decimal.Decimal
	BalanceBefore    decimal.Decimal
	AvailableBalance decimal.Decimal
}

func (b *ATMBody) accepts(k Kind) bool { return k == KindATM }

func (b *ATMBody) clone() Body {
	c := *b
	return &c
}
