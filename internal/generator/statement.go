package generator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

func (g *Generator) statement(p region.Profile, mode document.Mode) document.Record {
	today := g.today()

	n := 3
	if mode == document.ModeAutomated {
		n = 5
	}

	total := decimal.Zero
	seen := make(map[string]bool, n)
	lines := make([]document.InvoiceRef, 0, n)

	for range n {
		ref := fmt.Sprintf("INV-%d", g.rnd.IntN(10000))
		for seen[ref] {
			ref = fmt.Sprintf("INV-%d", g.rnd.IntN(10000))
		}

		seen[ref] = true

		line := document.InvoiceRef{
			Date:        today.AddDate(0, 0, -g.rnd.IntN(30)),
			Reference:   ref,
			Amount:      g.amount(50, 550),
			Description: "Services Rendered",
		}

		total = total.Add(line.Amount)
		lines = append(lines, line)
	}

	slices.SortStableFunc(lines, func(a, b document.InvoiceRef) int {
		return a.Date.Compare(b.Date)
	})

	return document.Record{
		Kind:        document.KindStatement,
		Counterpart: g.pick(p.Pool.Suppliers),
		Address:     g.pick(p.Pool.Addresses),
		Date:        today,
		Total:       total,
		Tax:         decimal.Zero,
		Body: &document.StatementBody{
			Lines:        lines,
			CustomerRef:  fmt.Sprintf("CUST-%d", g.rnd.IntN(999)),
			CustomerName: genericCustomer,
		},
	}
}
