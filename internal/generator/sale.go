package generator

import (
	"fmt"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

const dueInDays = 30

func (g *Generator) sale(p region.Profile, cat catalog.Category, kind document.Kind, req Request) document.Record {
	today := g.today()

	body := &document.SaleBody{
		BillTo:   genericCustomer,
		AuthCode: g.authCode(),
	}

	rec := document.Record{Kind: kind}

	if req.Mode == document.ModeManual {
		m := req.Manual

		if cat == catalog.Sales {
			body.BillTo = m.Counterpart
			body.Issuer = req.Issuer

			if body.Issuer == "" {
				body.Issuer = p.Pool.Suppliers[1]
			}
		} else {
			body.Issuer = m.Counterpart
		}

		rec.Address = p.Pool.Addresses[0]
		rec.Date = m.Date
		rec.Total = m.Total

		if kind == document.KindInvoice && m.DueDate != nil {
			body.DueDate = new(*m.DueDate)
		}

		if m.AutoTax {
			rec.Tax = document.InclusiveTax(m.Total, p.TaxRate)
		} else {
			rec.Tax = m.Tax
		}
	} else {
		body.Issuer = g.pick(p.Pool.Suppliers)
		rec.Address = g.pick(p.Pool.Addresses)
		rec.Date = today
		rec.Total = g.amount(10, 210)
		rec.Tax = document.InclusiveTax(rec.Total, p.TaxRate)

		if kind == document.KindInvoice {
			body.DueDate = new(today.AddDate(0, 0, dueInDays))
		}
	}

	if cat == catalog.Sales {
		rec.Counterpart = body.BillTo
	} else {
		rec.Counterpart = body.Issuer
	}

	if req.WithPONumber {
		body.PONumber = new(fmt.Sprintf("PO-%d", g.rnd.IntN(100000)))
	}

	if kind == document.KindCreditNote {
		body.OriginalInvoiceRef = new(fmt.Sprintf("REF-%d", g.rnd.IntN(99999)))
	}

	body.Lines = document.SaleLines(kind, rec.Subtotal())
	rec.Body = body

	return rec
}

// LinkedInvoice synthesizes the supporting invoice for one supplier
// statement line. The invoice is billed by the statement's supplier with the
// line's date and amount; tax is recomputed at the region rate.
func (g *Generator) LinkedInvoice(stmt document.Record, line document.InvoiceRef, regionCode string) (document.Record, error) {
	sb, ok := stmt.Statement()
	if !ok {
		return document.Record{}, fmt.Errorf("%w: linked invoices need a supplier statement, got %s",
			document.ErrConfiguration, stmt.Kind)
	}

	p, err := g.regions.Lookup(regionCode)
	if err != nil {
		return document.Record{}, err
	}

	rec := document.Record{
		Kind:        document.KindInvoice,
		Counterpart: stmt.Counterpart,
		Address:     stmt.Address,
		Date:        line.Date,
		Total:       line.Amount,
		Tax:         document.InclusiveTax(line.Amount, p.TaxRate),
	}

	rec.Body = &document.SaleBody{
		Lines: []document.GoodsLine{
			{Description: line.Description, Quantity: 1, Amount: rec.Subtotal()},
		},
		Issuer:   stmt.Counterpart,
		BillTo:   sb.CustomerName,
		PONumber: new(line.Reference),
		AuthCode: "LINKED",
		Linked:   true,
	}

	return rec, nil
}
