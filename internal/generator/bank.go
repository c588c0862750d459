package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

const (
	accountHolder     = "John Doe Trading"
	creditProbability = 0.3
)

var debitDescriptions = []string{"Payment", "Direct Debit", "Card Purchase", "ATM"}

// bank builds a statement of consecutive daily transactions ending
// yesterday. A debit that would overdraw the account is booked as a deposit
// so the closing balance never goes negative.
func (g *Generator) bank(p region.Profile, mode document.Mode) document.Record {
	today := g.today()
	opening := g.amount(1000, 6000)

	n := 5
	if mode == document.ModeAutomated {
		n = 5 + g.rnd.IntN(10)
	}

	balance := opening
	txns := make([]document.BankTransaction, 0, n)

	for i := range n {
		amt := g.amount(10, 210)
		credit := g.chance(creditProbability) || balance.LessThan(amt)

		t := document.BankTransaction{Date: today.AddDate(0, 0, i-n)}

		if credit {
			balance = balance.Add(amt)
			t.Description = "Deposit"
			t.Credit = decimal.NewNullDecimal(amt)
		} else {
			balance = balance.Sub(amt)
			t.Description = g.pick(debitDescriptions)
			t.Debit = decimal.NewNullDecimal(amt)
		}

		t.Balance = balance
		txns = append(txns, t)
	}

	return document.Record{
		Kind:        document.KindBank,
		Counterpart: g.pick(p.BankNames()),
		Address:     g.pick(p.Pool.Addresses),
		Date:        today,
		Total:       balance,
		Tax:         decimal.Zero,
		Body: &document.BankBody{
			Transactions:   txns,
			AccountNumber:  fmt.Sprintf("%09d", g.rnd.IntN(1_000_000_000)),
			AccountName:    accountHolder,
			SortCode:       fmt.Sprintf("%02d-%02d-%02d", g.rnd.IntN(100), g.rnd.IntN(100), g.rnd.IntN(100)),
			OpeningBalance: opening,
		},
	}
}
