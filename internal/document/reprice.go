package document

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const refundPrefix = "Refund: "

// SaleLines builds the two standard line items for a sale-family subtotal.
// Credit notes carry the same positive amounts with refund wording.
func SaleLines(kind Kind, subtotal decimal.Decimal) []GoodsLine {
	goods, service := SplitSubtotal(subtotal)

	lines := []GoodsLine{
		{Description: "General Goods", Quantity: 1, Amount: goods},
		{Description: "Service Fee", Quantity: 1, Amount: service},
	}

	if kind == KindCreditNote {
		for i := range lines {
			lines[i].Description = refundPrefix + lines[i].Description
		}
	}

	return lines
}

// Reprice returns a copy of a sale-family record carrying a new total and
// tax. Line descriptions are kept; a single line takes the whole subtotal,
// two lines are split 70/30.
func Reprice(r Record, total, tax decimal.Decimal) (Record, error) {
	if _, ok := r.Sale(); !ok {
		return Record{}, fmt.Errorf("%w: cannot reprice %s record", ErrConfiguration, r.Kind)
	}

	out := r.Clone()
	out.Total = total
	out.Tax = tax

	b, _ := out.Sale()
	sub := out.Subtotal()

	switch len(b.Lines) {
	case 1:
		b.Lines[0].Amount = sub
	case 2:
		goods, service := SplitSubtotal(sub)
		b.Lines[0].Amount = goods
		b.Lines[1].Amount = service
	default:
		b.Lines = SaleLines(out.Kind, sub)
	}

	return out, nil
}
