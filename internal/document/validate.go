package document

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks that the record is fully resolved and self-consistent.
// Only records that pass are handed to the capture pipeline.
func (r Record) Validate() error {
	if r.Body == nil {
		return fmt.Errorf("%w: %s record has no body", ErrInconsistent, r.Kind)
	}

	if !r.Body.accepts(r.Kind) {
		return fmt.Errorf("%w: body %T does not match kind %s", ErrInconsistent, r.Body, r.Kind)
	}

	if r.Total.IsNegative() {
		return fmt.Errorf("%w: negative total %s", ErrInconsistent, r.Total.StringFixed(2))
	}

	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInconsistent)
	}

	if !r.Kind.Taxable() && !r.Tax.IsZero() {
		return fmt.Errorf("%w: %s records carry no tax", ErrInconsistent, r.Kind)
	}

	switch b := r.Body.(type) {
	case *SaleBody:
		return r.validateSale(b)
	case *BankBody:
		return r.validateBank(b)
	case *StatementBody:
		return r.validateStatement(b)
	case *VaultBody:
		if !r.Total.IsZero() {
			return fmt.Errorf("%w: vault total must be zero", ErrInconsistent)
		}
	case *ATMBody:
		return r.validateATM(b)
	}

	return nil
}

func (r Record) validateSale(b *SaleBody) error {
	if len(b.Lines) == 0 {
		return fmt.Errorf("%w: no line items", ErrInconsistent)
	}

	if r.Tax.IsNegative() || r.Tax.GreaterThan(r.Total) {
		return fmt.Errorf("%w: tax %s outside 0..%s", ErrInconsistent, r.Tax.StringFixed(2), r.Total.StringFixed(2))
	}

	sum := decimal.Zero
	for _, l := range b.Lines {
		sum = sum.Add(l.Amount)
	}

	if !sum.Equal(r.Subtotal()) {
		return fmt.Errorf("%w: lines sum to %s, subtotal is %s",
			ErrInconsistent, sum.StringFixed(2), r.Subtotal().StringFixed(2))
	}

	if (r.Kind == KindCreditNote) != (b.OriginalInvoiceRef != nil) {
		return fmt.Errorf("%w: original invoice reference only belongs on credit notes", ErrInconsistent)
	}

	if b.DueDate != nil && r.Kind != KindInvoice {
		return fmt.Errorf("%w: due date only belongs on invoices", ErrInconsistent)
	}

	return nil
}

func (r Record) validateBank(b *BankBody) error {
	if len(b.Transactions) == 0 {
		return fmt.Errorf("%w: no transactions", ErrInconsistent)
	}

	balance := b.OpeningBalance
	for i, t := range b.Transactions {
		if t.Debit.Valid == t.Credit.Valid {
			return fmt.Errorf("%w: transaction %d must be exactly one of debit or credit", ErrInconsistent, i)
		}

		balance = balance.Add(t.Amount())
		if !balance.Equal(t.Balance) {
			return fmt.Errorf("%w: transaction %d balance %s, expected %s",
				ErrInconsistent, i, t.Balance.StringFixed(2), balance.StringFixed(2))
		}
	}

	if !balance.Equal(r.Total) {
		return fmt.Errorf("%w: closing balance %s differs from total %s",
			ErrInconsistent, balance.StringFixed(2), r.Total.StringFixed(2))
	}

	return nil
}

func (r Record) validateStatement(b *StatementBody) error {
	sum := decimal.Zero
	for _, l := range b.Lines {
		sum = sum.Add(l.Amount)
	}

	if !sum.Equal(r.Total) {
		return fmt.Errorf("%w: statement lines sum to %s, total is %s",
			ErrInconsistent, sum.StringFixed(2), r.Total.StringFixed(2))
	}

	return nil
}

func (r Record) validateATM(b *ATMBody) error {
	if !b.Withdrawal.Equal(r.Total) {
		return fmt.Errorf("%w: withdrawal differs from total", ErrInconsistent)
	}

	want := b.BalanceBefore.Sub(b.Withdrawal).Sub(b.Surcharge)
	if !want.Equal(b.AvailableBalance) {
		return fmt.Errorf("%w: available balance %s, expected %s",
			ErrInconsistent, b.AvailableBalance.StringFixed(2), want.StringFixed(2))
	}

	return nil
}
