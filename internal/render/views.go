package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

//go:embed templates/*.html
var templateFS embed.FS

// Size is a page size in CSS pixels.
type Size struct {
	Width  int
	Height int
}

var (
	portrait  = Size{Width: 794, Height: 1123}
	landscape = Size{Width: 1123, Height: 794}
	slip      = Size{Width: 480, Height: 678}
)

var templateFor = map[document.Kind]string{
	document.KindReceipt:    "sale.html",
	document.KindInvoice:    "sale.html",
	document.KindCreditNote: "sale.html",
	document.KindBank:       "bank.html",
	document.KindStatement:  "statement.html",
	document.KindVault:      "vault.html",
	document.KindATM:        "atm.html",
}

// SizeOf returns the page size a record of kind k is laid out on.
func SizeOf(k document.Kind) Size {
	switch k {
	case document.KindBank:
		return landscape
	case document.KindATM:
		return slip
	}

	return portrait
}

// Views turns records into standalone HTML pages.
type Views struct {
	tpl *template.Template
}

func NewViews() (*Views, error) {
	tpl, err := template.New("page").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Views{tpl: tpl}, nil
}

// viewData is what every template executes against.
type viewData struct {
	Record  document.Record
	Profile region.Profile
	Size    Size
	Style   template.CSS
	Title   string

	Sale      *document.SaleBody
	Bank      *document.BankBody
	Statement *document.StatementBody
	Vault     *document.VaultBody
	ATM       *document.ATMBody
}

func (v viewData) Money(d decimal.Decimal) string {
	return v.Profile.FormatMoney(d)
}

func (v viewData) Date(t time.Time) string {
	return v.Profile.FormatDate(t)
}

func (v viewData) NullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}

	return v.Profile.FormatMoney(d.Decimal)
}

func title(r document.Record) string {
	switch r.Kind {
	case document.KindReceipt:
		return "Receipt"
	case document.KindInvoice:
		return "Invoice"
	case document.KindCreditNote:
		return "Credit Note"
	case document.KindBank:
		return "Bank Statement"
	case document.KindStatement:
		return "Statement of Account"
	case document.KindATM:
		return "ATM Withdrawal"
	case document.KindVault:
		if b, ok := r.Vault(); ok {
			return b.Title
		}
	}

	return string(r.Kind)
}

// Render lays out rec as a full HTML page with style applied to the page root.
func (v *Views) Render(rec document.Record, p region.Profile, style Style) (string, error) {
	name, ok := templateFor[rec.Kind]
	if !ok {
		return "", fmt.Errorf("%w: no view for kind %s", document.ErrConfiguration, rec.Kind)
	}

	data := viewData{
		Record:  rec,
		Profile: p,
		Size:    SizeOf(rec.Kind),
		Style:   template.CSS(style.CSS()),
		Title:   title(rec),
	}

	data.Sale, _ = rec.Sale()
	data.Bank, _ = rec.Bank()
	data.Statement, _ = rec.Statement()
	data.Vault, _ = rec.Vault()
	data.ATM, _ = rec.ATM()

	var buf bytes.Buffer
	if err := v.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}

	return buf.String(), nil
}
