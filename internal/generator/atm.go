package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

var (
	withdrawals = []int64{20, 40, 50, 60, 80, 100, 150, 200, 250, 300}
	surcharges  = []string{"0.00", "1.50", "2.50", "2.95"}
	cardTypes   = []string{"VISA DEBIT", "MASTERCARD", "MAESTRO"}
)

func (g *Generator) atm(p region.Profile) document.Record {
	withdrawal := decimal.NewFromInt(withdrawals[g.rnd.IntN(len(withdrawals))]).Round(2)
	surcharge := decimal.RequireFromString(g.pick(surcharges))
	before := withdrawal.Add(surcharge).Add(g.amount(100, 3100))
	location := g.pick(p.Pool.Addresses)

	return document.Record{
		Kind:        document.KindATM,
		Counterpart: g.pick(p.BankNames()),
		Address:     location,
		Date:        g.today(),
		Total:       withdrawal,
		Tax:         decimal.Zero,
		Body: &document.ATMBody{
			Location:         location,
			MachineID:        fmt.Sprintf("ATM-%05d", g.rnd.IntN(100000)),
			CardType:         g.pick(cardTypes),
			MaskedAccount:    fmt.Sprintf("XXXX XXXX XXXX %04d", g.rnd.IntN(10000)),
			AuthCode:         g.authCode(),
			TransactionRef:   fmt.Sprintf("TXN-%06d", g.rnd.IntN(1_000_000)),
			Withdrawal:       withdrawal,
			Surcharge:        surcharge,
			BalanceBefore:    before,
			AvailableBalance: before.Sub(withdrawal).Sub(surcharge),
		},
	}
}
