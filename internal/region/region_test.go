package region_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

func TestDefault(t *testing.T) {
	table := region.Default()
	assert.Equal(t, []string{"UK", "AU", "US", "FR"}, table.Codes())

	uk, err := table.Lookup("uk")
	require.NoError(t, err)
	assert.Equal(t, "£", uk.Currency)
	assert.Equal(t, "VAT", uk.TaxLabel)
	assert.Equal(t, "20", uk.TaxPercent())
	assert.Equal(t, language.BritishEnglish, uk.Locale)

	us, err := table.Lookup("US")
	require.NoError(t, err)
	assert.Equal(t, "7", us.TaxPercent())
}

func TestTable_LookupUnknown(t *testing.T) {
	_, err := region.Default().Lookup("DE")
	assert.ErrorIs(t, err, document.ErrLookup)
}

func TestProfile_FormatDate(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	uk, _ := region.Default().Lookup("UK")
	us, _ := region.Default().Lookup("US")

	assert.Equal(t, "15/01/2024", uk.FormatDate(day))
	assert.Equal(t, "01/15/2024", us.FormatDate(day))
}

func TestProfile_FormatMoney(t *testing.T) {
	fr, _ := region.Default().Lookup("FR")

	assert.Equal(t, "€12.50", fr.FormatMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-€3.00", fr.FormatMoney(decimal.RequireFromString("-3")))
}

func TestProfile_BankNames(t *testing.T) {
	type testCase struct {
		code string
		want []string
	}

	tests := []testCase{
		{code: "UK", want: []string{"Global Bank Inc.", "Barclays"}},
		{code: "AU", want: []string{"Commonwealth Bank", "ANZ"}},
		{code: "US", want: []string{"Chase Bank", "Bank of America"}},
		{code: "FR", want: []string{"BNP Paribas", "Société Générale"}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p, err := region.Default().Lookup(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.BankNames())
		})
	}
}

func TestNewTable_Validation(t *testing.T) {
	valid := region.Profile{
		Code:       "XX",
		Locale:     language.English,
		TaxRate:    decimal.RequireFromString("0.15"),
		DateFormat: region.DayMonthYear,
		Pool:       region.Pool{Suppliers: []string{"A", "B"}, Addresses: []string{"1 Road"}},
	}

	type testCase struct {
		name   string
		mutate func(p *region.Profile)
	}

	tests := []testCase{
		{name: "RateOfOne", mutate: func(p *region.Profile) { p.TaxRate = decimal.NewFromInt(1) }},
		{name: "NegativeRate", mutate: func(p *region.Profile) { p.TaxRate = decimal.RequireFromString("-0.1") }},
		{name: "NoLocale", mutate: func(p *region.Profile) { p.Locale = language.Und }},
		{name: "SingleSupplier", mutate: func(p *region.Profile) { p.Pool.Suppliers = []string{"A"} }},
		{name: "NoAddresses", mutate: func(p *region.Profile) { p.Pool.Addresses = nil }},
		{name: "BadDateFormat", mutate: func(p *region.Profile) { p.DateFormat = "YYYY" }},
	}

	_, err := region.NewTable(valid)
	require.NoError(t, err)

	_, err = region.NewTable(valid, valid)
	assert.ErrorIs(t, err, document.ErrConfiguration)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			_, err := region.NewTable(p)
			assert.ErrorIs(t, err, document.ErrConfiguration)
		})
	}
}

func TestReadPools(t *testing.T) {
	input := "Region;Kind;Value\n" +
		"uk;supplier;Pret A Manger\n" +
		"UK;supplier;Lloyds Bank\n" +
		";;\n" +
		"UK;address;1 Strand, London\n" +
		"FR;supplier;Crédit Agricole\n" +
		"FR;supplier;La Poste\n"

	pools, err := region.ReadPools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pret A Manger", "Lloyds Bank"}, pools["UK"].Suppliers)
	assert.Equal(t, []string{"1 Strand, London"}, pools["UK"].Addresses)
	assert.Equal(t, []string{"Crédit Agricole", "La Poste"}, pools["FR"].Suppliers)

	table, err := region.Default().WithPools(pools)
	require.NoError(t, err)

	uk, _ := table.Lookup("UK")
	assert.Equal(t, []string{"Lloyds Bank"}, uk.BankNames())

	fr, _ := table.Lookup("FR")
	assert.Len(t, fr.Pool.Suppliers, 2)
	assert.Len(t, fr.Pool.Addresses, 2)
}

func TestReadPools_Errors(t *testing.T) {
	tests := map[string]string{
		"MissingHeader": "region;value\nUK;x\n",
		"UnknownKind":   "region;kind;value\nUK;phone;0207\n",
		"MissingValue":  "region;kind;value\nUK;supplier;\n",
		"Empty":         "",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := region.ReadPools(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestWithPools_UnknownRegion(t *testing.T) {
	_, err := region.Default().WithPools(map[string]region.Pool{"DE": {Suppliers: []string{"A", "B"}}})
	assert.ErrorIs(t, err, document.ErrLookup)
}
