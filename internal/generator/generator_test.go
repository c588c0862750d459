package generator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/generator"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func newGenerator(seed uint64) *generator.Generator {
	return generator.New(region.Default(), catalog.Default(),
		generator.WithSeed(seed),
		generator.WithNow(func() time.Time { return fixedNow }),
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func manual(counterpart, total string) *document.Manual {
	due := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

	return &document.Manual{
		Counterpart: counterpart,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     &due,
		Total:       dec(total),
		AutoTax:     true,
	}
}

func TestGenerator_Generate_AllTypesAreConsistent(t *testing.T) {
	cat := catalog.Default()

	for _, code := range region.Default().Codes() {
		for _, e := range cat.Entries() {
			for _, typ := range e.Types {
				for seed := uint64(0); seed < 40; seed++ {
					g := newGenerator(seed)

					rec, err := g.Generate(generator.Request{
						Region:   code,
						Category: e.Code,
						DocType:  typ.Name,
						Mode:     document.ModeAutomated,
					})
					require.NoError(t, err)

					assert.Equal(t, typ.Kind, rec.Kind)
					require.NoError(t, rec.Validate(), "%s/%s/%s seed %d", code, e.Code, typ.Name, seed)
				}
			}
		}
	}
}

func TestGenerator_Sale_AutoTaxAndSplit(t *testing.T) {
	uk, _ := region.Default().Lookup("UK")

	for seed := uint64(0); seed < 200; seed++ {
		rec, err := newGenerator(seed).Generate(generator.Request{
			Region:   "UK",
			Category: catalog.Costs,
			DocType:  "Invoice",
			Mode:     document.ModeAutomated,
		})
		require.NoError(t, err)

		assert.True(t, rec.Total.GreaterThanOrEqual(dec("10")) && rec.Total.LessThan(dec("210")))
		assert.True(t, rec.Tax.Equal(document.InclusiveTax(rec.Total, uk.TaxRate)))

		b, ok := rec.Sale()
		require.True(t, ok)
		require.Len(t, b.Lines, 2)
		assert.True(t, b.Lines[0].Amount.Add(b.Lines[1].Amount).Add(rec.Tax).Equal(rec.Total))
		require.NotNil(t, b.DueDate)
		assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *b.DueDate)
		assert.Nil(t, b.PONumber)
		assert.Nil(t, b.OriginalInvoiceRef)
		assert.Len(t, b.AuthCode, 6)
	}
}

func TestGenerator_CreditNoteScenario(t *testing.T) {
	rec, err := newGenerator(1).Generate(generator.Request{
		Region:   "UK",
		Category: catalog.Costs,
		DocType:  "Credit Note",
		Mode:     document.ModeManual,
		Manual:   manual("Joe's Coffee", "100.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, document.KindCreditNote, rec.Kind)
	assert.Equal(t, "16.67", rec.Tax.StringFixed(2))
	assert.Equal(t, "83.33", rec.Subtotal().StringFixed(2))

	b, _ := rec.Sale()
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "58.33", b.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "25.00", b.Lines[1].Amount.StringFixed(2))

	for _, l := range b.Lines {
		assert.True(t, strings.HasPrefix(l.Description, "Refund: "), l.Description)
	}

	require.NotNil(t, b.OriginalInvoiceRef)
	assert.True(t, strings.HasPrefix(*b.OriginalInvoiceRef, "REF-"))
	assert.Nil(t, b.DueDate)
	assert.Equal(t, "Joe's Coffee", rec.Counterpart)
	assert.Equal(t, "Joe's Coffee", b.Issuer)
	assert.Equal(t, "Generic Corp Ltd.", b.BillTo)
	assert.Equal(t, "45 O'Connell St, London, EC1A 1BB", rec.Address)
	assert.NoError(t, rec.Validate())
}

func TestGenerator_Sale_Counterparts(t *testing.T) {
	type args struct {
		req generator.Request
	}

	type testCase struct {
		name            string
		args            args
		wantCounterpart string
		wantIssuer      string
		wantBillTo      string
	}

	tests := []testCase{
		{
			name: "SalesUsesPinnedIssuer",
			args: args{req: generator.Request{
				Region: "AU", Category: catalog.Sales, DocType: "Sales Invoice", Mode: document.ModeManual,
				Manual: manual("Acme Corp", "50.00"), Issuer: "Bunnings",
			}},
			wantCounterpart: "Acme Corp",
			wantIssuer:      "Bunnings",
			wantBillTo:      "Acme Corp",
		},
		{
			name: "SalesFallsBackToSecondSupplier",
			args: args{req: generator.Request{
				Region: "AU", Category: catalog.Sales, DocType: "Sales Receipt", Mode: document.ModeManual,
				Manual: manual("Acme Corp", "50.00"),
			}},
			wantCounterpart: "Acme Corp",
			wantIssuer:      "4Birds Pty Ltd",
			wantBillTo:      "Acme Corp",
		},
		{
			name: "CostsManualNameIssues",
			args: args{req: generator.Request{
				Region: "US", Category: catalog.Costs, DocType: "Receipt", Mode: document.ModeManual,
				Manual: manual("Liberty Cafe", "12.00"),
			}},
			wantCounterpart: "Liberty Cafe",
			wantIssuer:      "Liberty Cafe",
			wantBillTo:      "Generic Corp Ltd.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newGenerator(7).Generate(tt.args.req)
			require.NoError(t, err)

			b, _ := rec.Sale()
			assert.Equal(t, tt.wantCounterpart, rec.Counterpart)
			assert.Equal(t, tt.wantIssuer, b.Issuer)
			assert.Equal(t, tt.wantBillTo, b.BillTo)
			assert.NoError(t, rec.Validate())
		})
	}
}

func TestGenerator_Sale_ManualTaxOverride(t *testing.T) {
	m := manual("Joe's Coffee", "120.00")
	m.AutoTax = false
	m.Tax = dec("5.00")

	rec, err := newGenerator(3).Generate(generator.Request{
		Region: "UK", Category: catalog.Costs, DocType: "Invoice", Mode: document.ModeManual, Manual: m,
	})
	require.NoError(t, err)

	assert.Equal(t, "5.00", rec.Tax.StringFixed(2))
	assert.Equal(t, "115.00", rec.Subtotal().StringFixed(2))

	b, _ := rec.Sale()
	require.NotNil(t, b.DueDate)
	assert.NoError(t, rec.Validate())
}

func TestGenerator_PONumberOnlyWhenRequested(t *testing.T) {
	rec, err := newGenerator(5).Generate(generator.Request{
		Region: "FR", Category: catalog.Costs, DocType: "Receipt", Mode: document.ModeAutomated, WithPONumber: true,
	})
	require.NoError(t, err)

	b, _ := rec.Sale()
	require.NotNil(t, b.PONumber)
	assert.True(t, strings.HasPrefix(*b.PONumber, "PO-"))
}

func TestGenerator_Bank(t *testing.T) {
	type testCase struct {
		name  string
		mode  document.Mode
		minTx int
		maxTx int
	}

	tests := []testCase{
		{name: "Manual", mode: document.ModeManual, minTx: 5, maxTx: 5},
		{name: "Automated", mode: document.ModeAutomated, minTx: 5, maxTx: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 100; seed++ {
				rec, err := newGenerator(seed).Generate(generator.Request{
					Region: "UK", Category: catalog.Bank, DocType: "Bank Statement", Mode: tt.mode,
				})
				require.NoError(t, err)

				b, ok := rec.Bank()
				require.True(t, ok)

				n := len(b.Transactions)
				assert.GreaterOrEqual(t, n, tt.minTx)
				assert.LessOrEqual(t, n, tt.maxTx)
				assert.True(t, b.OpeningBalance.GreaterThanOrEqual(dec("1000")) && b.OpeningBalance.LessThan(dec("6000")))
				assert.True(t, b.Transactions[n-1].Balance.Equal(rec.Total))
				assert.Contains(t, []string{"Global Bank Inc.", "Barclays"}, rec.Counterpart)
				assert.Equal(t, "0.00", rec.Tax.StringFixed(2))

				prev := b.OpeningBalance
				for i, tx := range b.Transactions {
					assert.True(t, tx.Balance.Equal(prev.Add(tx.Amount())))
					assert.Equal(t, fixedNow.Truncate(24*time.Hour).AddDate(0, 0, i-n), tx.Date)

					if tx.Credit.Valid {
						assert.Equal(t, "Deposit", tx.Description)
					}

					prev = tx.Balance
				}
			}
		})
	}
}

func TestGenerator_Statement(t *testing.T) {
	for _, mode := range []document.Mode{document.ModeManual, document.ModeAutomated} {
		rec, err := newGenerator(11).Generate(generator.Request{
			Region: "US", Category: catalog.Supplier, DocType: "Supplier Statement", Mode: mode,
		})
		require.NoError(t, err)

		b, ok := rec.Statement()
		require.True(t, ok)

		want := 5
		if mode == document.ModeManual {
			want = 3
		}

		require.Len(t, b.Lines, want)

		sum := decimal.Zero
		refs := map[string]bool{}

		for _, l := range b.Lines {
			sum = sum.Add(l.Amount)
			refs[l.Reference] = true

			assert.True(t, l.Amount.GreaterThanOrEqual(dec("50")) && l.Amount.LessThan(dec("550")))
			assert.True(t, strings.HasPrefix(l.Reference, "INV-"))
		}

		assert.Len(t, refs, want)
		assert.True(t, sum.Equal(rec.Total))
	}
}

func TestGenerator_Vault(t *testing.T) {
	type testCase struct {
		docType    string
		wantIssuer string
		wantTitle  string
	}

	tests := []testCase{
		{docType: "Insurance Policy", wantIssuer: "Global Assurance Ltd", wantTitle: "Certificate of Insurance"},
		{docType: "Tax Filing", wantIssuer: "Department of Revenue", wantTitle: "Tax Return Acknowledgement"},
		{docType: "Tenancy Agreement", wantIssuer: "Prime Estate Agents", wantTitle: "Tenancy Agreement"},
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			rec, err := newGenerator(2).Generate(generator.Request{
				Region: "UK", Category: catalog.Vault, DocType: tt.docType, Mode: document.ModeAutomated,
			})
			require.NoError(t, err)

			b, ok := rec.Vault()
			require.True(t, ok)
			assert.Equal(t, tt.wantIssuer, rec.Counterpart)
			assert.Equal(t, tt.wantTitle, b.Title)
			assert.Len(t, b.Paragraphs, 3)
			assert.True(t, rec.Total.IsZero())
			assert.True(t, rec.Tax.IsZero())
		})
	}
}

func TestGenerator_ATM(t *testing.T) {
	rec, err := newGenerator(9).Generate(generator.Request{
		Region: "AU", Category: catalog.Bank, DocType: "ATM Slip", Mode: document.ModeAutomated,
	})
	require.NoError(t, err)

	b, ok := rec.ATM()
	require.True(t, ok)
	assert.True(t, b.Withdrawal.Equal(rec.Total))
	assert.True(t, strings.HasPrefix(b.MaskedAccount, "XXXX XXXX XXXX "))
	assert.True(t, b.AvailableBalance.GreaterThanOrEqual(dec("100")))
	assert.NoError(t, rec.Validate())
}

func TestGenerator_Errors(t *testing.T) {
	type testCase struct {
		name    string
		req     generator.Request
		wantErr error
	}

	tests := []testCase{
		{
			name:    "UnknownRegion",
			req:     generator.Request{Region: "DE", Category: catalog.Costs, DocType: "Receipt", Mode: document.ModeAutomated},
			wantErr: document.ErrLookup,
		},
		{
			name:    "UnknownCategory",
			req:     generator.Request{Region: "UK", Category: "PAYROLL", DocType: "Receipt", Mode: document.ModeAutomated},
			wantErr: document.ErrConfiguration,
		},
		{
			name:    "UnknownType",
			req:     generator.Request{Region: "UK", Category: catalog.Costs, DocType: "Payslip", Mode: document.ModeAutomated},
			wantErr: document.ErrConfiguration,
		},
		{
			name:    "UnknownMode",
			req:     generator.Request{Region: "UK", Category: catalog.Costs, DocType: "Receipt", Mode: "SOMETIMES"},
			wantErr: document.ErrConfiguration,
		},
		{
			name:    "ManualVault",
			req:     generator.Request{Region: "UK", Category: catalog.Vault, DocType: "Tax Filing", Mode: document.ModeManual},
			wantErr: document.ErrConfiguration,
		},
		{
			name:    "ManualWithoutValues",
			req:     generator.Request{Region: "UK", Category: catalog.Costs, DocType: "Receipt", Mode: document.ModeManual},
			wantErr: document.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGenerator(0).Generate(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerator_DeterministicWithSeed(t *testing.T) {
	req := generator.Request{Region: "UK", Category: catalog.Bank, DocType: "Bank Statement", Mode: document.ModeAutomated}

	a, err := newGenerator(42).Generate(req)
	require.NoError(t, err)

	b, err := newGenerator(42).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerator_LinkedInvoice(t *testing.T) {
	g := newGenerator(4)

	stmt, err := g.Generate(generator.Request{
		Region: "FR", Category: catalog.Supplier, DocType: "Supplier Statement", Mode: document.ModeManual,
	})
	require.NoError(t, err)

	sb, _ := stmt.Statement()
	fr, _ := region.Default().Lookup("FR")

	for _, line := range sb.Lines {
		inv, err := g.LinkedInvoice(stmt, line, "FR")
		require.NoError(t, err)

		assert.Equal(t, document.KindInvoice, inv.Kind)
		assert.Equal(t, stmt.Counterpart, inv.Counterpart)
		assert.Equal(t, line.Date, inv.Date)
		assert.True(t, inv.Total.Equal(line.Amount))
		assert.True(t, inv.Tax.Equal(document.InclusiveTax(line.Amount, fr.TaxRate)))

		b, _ := inv.Sale()
		assert.True(t, b.Linked)
		assert.Equal(t, "LINKED", b.AuthCode)
		require.NotNil(t, b.PONumber)
		assert.Equal(t, line.Reference, *b.PONumber)
		assert.NoError(t, inv.Validate())
	}

	receipt, err := g.Generate(generator.Request{Region: "FR", Category: catalog.Costs, DocType: "Receipt", Mode: document.ModeAutomated})
	require.NoError(t, err)

	_, err = g.LinkedInvoice(receipt, document.InvoiceRef{}, "FR")
	assert.ErrorIs(t, err, document.ErrConfiguration)
}

func TestGenerator_PickIssuer(t *testing.T) {
	issuer, err := newGenerator(8).PickIssuer("US")
	require.NoError(t, err)

	us, _ := region.Default().Lookup("US")
	assert.Contains(t, us.Pool.Suppliers, issuer)

	_, err = newGenerator(8).PickIssuer("ZZ")
	assert.ErrorIs(t, err, document.ErrLookup)
}
