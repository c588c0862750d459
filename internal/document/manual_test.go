package document_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
)

func TestParseManual(t *testing.T) {
	type args struct {
		in document.ManualInput
	}

	type testCase struct {
		name      string
		args      args
		wantField string
		check     func(t *testing.T, m document.Manual)
	}

	base := document.ManualInput{
		Counterpart: "Joe's Coffee",
		Date:        "2024-01-15",
		DueDate:     "2024-02-14",
		Total:       "120.00",
		AutoTax:     true,
	}

	with := func(fn func(in *document.ManualInput)) document.ManualInput {
		in := base
		fn(&in)

		return in
	}

	tests := []testCase{
		{
			name: "AutoTax",
			args: args{in: base},
			check: func(t *testing.T, m document.Manual) {
				assert.Equal(t, "Joe's Coffee", m.Counterpart)
				assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), m.Date)
				require.NotNil(t, m.DueDate)
				assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *m.DueDate)
				assert.Equal(t, "120.00", m.Total.StringFixed(2))
				assert.True(t, m.AutoTax)
			},
		},
		{
			name: "ExplicitTax",
			args: args{in: with(func(in *document.ManualInput) {
				in.AutoTax = false
				in.Tax = "12.5"
				in.DueDate = ""
			})},
			check: func(t *testing.T, m document.Manual) {
				assert.Equal(t, "12.50", m.Tax.StringFixed(2))
				assert.False(t, m.AutoTax)
				assert.Nil(t, m.DueDate)
			},
		},
		{
			name:      "NonNumericTotal",
			args:      args{in: with(func(in *document.ManualInput) { in.Total = "12,00 EUR" })},
			wantField: "total",
		},
		{
			name:      "NegativeTotal",
			args:      args{in: with(func(in *document.ManualInput) { in.Total = "-3" })},
			wantField: "total",
		},
		{
			name: "TaxAboveTotal",
			args: args{in: with(func(in *document.ManualInput) {
				in.AutoTax = false
				in.Tax = "500"
			})},
			wantField: "tax",
		},
		{
			name: "MissingTax",
			args: args{in: with(func(in *document.ManualInput) {
				in.AutoTax = false
			})},
			wantField: "tax",
		},
		{
			name:      "BadDate",
			args:      args{in: with(func(in *document.ManualInput) { in.Date = "15/01/2024" })},
			wantField: "date",
		},
		{
			name:      "MissingCounterpart",
			args:      args{in: with(func(in *document.ManualInput) { in.Counterpart = "   " })},
			wantField: "counterpart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := document.ParseManual(tt.args.in)
			if tt.wantField != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, document.ErrValidation)

				var verr *document.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestManual_InputRoundTrip(t *testing.T) {
	in := document.ManualInput{
		Counterpart: "Acme Corp",
		Date:        "2024-03-01",
		Total:       "99.90",
		Tax:         "0.00",
		AutoTax:     true,
	}

	m, err := document.ParseManual(in)
	require.NoError(t, err)
	assert.Equal(t, in, m.Input())
}
