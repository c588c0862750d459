package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	pageStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(72)
)

func field(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), value)
}

// RenderRecord is the terminal rendition of a record, showing the same
// fields as the printed page.
func RenderRecord(rec document.Record, p region.Profile) string {
	var lines []string

	lines = append(lines,
		titleStyle.Render(strings.ReplaceAll(string(rec.Kind), "_", " ")),
		"",
		field("Counterpart", rec.Counterpart),
		field("Address", rec.Address),
		field("Date", p.FormatDate(rec.Date)),
	)

	switch rec.Kind {
	case document.KindReceipt, document.KindInvoice, document.KindCreditNote:
		lines = append(lines, saleLines(rec, p)...)
	case document.KindBank:
		lines = append(lines, bankLines(rec, p)...)
	case document.KindStatement:
		lines = append(lines, statementLines(rec, p)...)
	case document.KindVault:
		lines = append(lines, vaultLines(rec)...)
	case document.KindATM:
		lines = append(lines, atmLines(rec, p)...)
	}

	return pageStyle.Render(strings.Join(lines, "\n"))
}

func saleLines(rec document.Record, p region.Profile) []string {
	b, _ := rec.Sale()

	out := []string{
		field("Issuer", b.Issuer),
		field("Bill To", b.BillTo),
		field("Auth", b.AuthCode),
	}

	if b.DueDate != nil {
		out = append(out, field("Due", p.FormatDate(*b.DueDate)))
	}

	if b.PONumber != nil {
		out = append(out, field("PO", *b.PONumber))
	}

	if b.OriginalInvoiceRef != nil {
		out = append(out, field("Original Inv.", *b.OriginalInvoiceRef))
	}

	out = append(out, "")

	for _, l := range b.Lines {
		out = append(out, fmt.Sprintf("  %-40s %3d %12s", l.Description, l.Quantity, p.FormatMoney(l.Amount)))
	}

	return append(out,
		"",
		field("Subtotal", p.FormatMoney(rec.Subtotal())),
		field(fmt.Sprintf("%s %s%%", p.TaxLabel, p.TaxPercent()), p.FormatMoney(rec.Tax)),
		field("Total", p.FormatMoney(rec.Total)),
	)
}

func bankLines(rec document.Record, p region.Profile) []string {
	b, _ := rec.Bank()

	out := []string{
		field("Account", fmt.Sprintf("%s %s", b.AccountNumber, b.SortCode)),
		field("Opening", p.FormatMoney(b.OpeningBalance)),
		"",
	}

	money := func(d decimal.NullDecimal) string {
		if !d.Valid {
			return ""
		}

		return p.FormatMoney(d.Decimal)
	}

	for _, t := range b.Transactions {
		out = append(out, fmt.Sprintf("  %s  %-16s %11s %11s %12s",
			p.FormatDate(t.Date), t.Description, money(t.Debit), money(t.Credit), p.FormatMoney(t.Balance)))
	}

	return append(out, "", field("Closing", p.FormatMoney(rec.Total)))
}

func statementLines(rec document.Record, p region.Profile) []string {
	b, _ := rec.Statement()

	out := []string{field("Customer", fmt.Sprintf("%s (%s)", b.CustomerName, b.CustomerRef)), ""}

	for _, l := range b.Lines {
		out = append(out, fmt.Sprintf("  %s  %-10s %-20s %12s", p.FormatDate(l.Date), l.Reference, l.Description, p.FormatMoney(l.Amount)))
	}

	return append(out, "", field("Balance Due", p.FormatMoney(rec.Total)))
}

func vaultLines(rec document.Record) []string {
	b, _ := rec.Vault()

	out := []string{field("Title", b.Title), field("Policy", b.PolicyNumber), field("Reference", b.Reference), ""}

	style := lipgloss.NewStyle().Width(68)
	for _, para := range b.Paragraphs {
		out = append(out, style.Render(para), "")
	}

	return out
}

func atmLines(rec document.Record, p region.Profile) []string {
	b, _ := rec.ATM()

	return []string{
		field("Location", b.Location),
		field("Machine", b.MachineID),
		field("Card", fmt.Sprintf("%s %s", b.CardType, b.MaskedAccount)),
		field("Auth", b.AuthCode),
		field("Ref", b.TransactionRef),
		"",
		field("Withdrawal", p.FormatMoney(b.Withdrawal)),
		field("Fee", p.FormatMoney(b.Surcharge)),
		field("Available", p.FormatMoney(b.AvailableBalance)),
	}
}

// cycle returns the element after cur in items, wrapping around.
func cycle(items []string, cur string) string {
	for i, it := range items {
		if strings.EqualFold(it, cur) {
			return items[(i+1)%len(items)]
		}
	}

	return items[0]
}
