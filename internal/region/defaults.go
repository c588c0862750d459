package region

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func defaultProfiles() []Profile {
	return []Profile{
		{
			Code:       "UK",
			Name:       "United Kingdom",
			Currency:   "£",
			Locale:     language.BritishEnglish,
			TaxLabel:   "VAT",
			TaxRate:    decimal.RequireFromString("0.20"),
			DateFormat: DayMonthYear,
			Pool: Pool{
				Suppliers: []string{
					"Joe's Coffee", "The London Pub", "British Gas", "Thames Water",
					"Tesco Express", "Global Bank Inc.", "Barclays",
				},
				Addresses: []string{
					"45 O'Connell St, London, EC1A 1BB",
					"10 Downing St, London",
					"221B Baker St, London",
				},
			},
		},
		{
			Code:       "AU",
			Name:       "Australia",
			Currency:   "$",
			Locale:     language.MustParse("en-AU"),
			TaxLabel:   "ABN",
			TaxRate:    decimal.RequireFromString("0.10"),
			DateFormat: DayMonthYear,
			Pool: Pool{
				Suppliers: []string{
					"Outback Bistro", "4Birds Pty Ltd", "Sydney Tech Supplies", "Woolworths",
					"Bunnings", "Commonwealth Bank", "ANZ",
				},
				Addresses: []string{
					"123 George St, Sydney, NSW 2000",
					"42 Wallaby Way, Sydney",
				},
			},
		},
		{
			Code:       "US",
			Name:       "United States",
			Currency:   "$",
			Locale:     language.AmericanEnglish,
			TaxLabel:   "Tax ID",
			TaxRate:    decimal.RequireFromString("0.07"),
			DateFormat: MonthDayYear,
			Pool: Pool{
				Suppliers: []string{
					"Liberty Cafe", "Main St. Hardware", "Starbucks Corp", "Walmart Supercenter",
					"Chase Bank", "Bank of America",
				},
				Addresses: []string{
					"742 Evergreen Terrace, Springfield, IL",
					"1600 Penn Ave, Washington DC",
				},
			},
		},
		{
			Code:       "FR",
			Name:       "France",
			Currency:   "€",
			Locale:     language.MustParse("fr-FR"),
			TaxLabel:   "TVA",
			TaxRate:    decimal.RequireFromString("0.20"),
			DateFormat: DayMonthYear,
			Pool: Pool{
				Suppliers: []string{
					"Le Bistrot de Paris", "Boulangerie Dupont", "Bouygues Telecom", "Carrefour City",
					"BNP Paribas", "Société Générale",
				},
				Addresses: []string{
					"23 Rue de Grenelle, 75700 Paris",
					"Champ de Mars, 5 Avenue Anatole France, Paris",
				},
			},
		},
	}
}

// Default returns the built-in UK, AU, US and FR profiles.
func Default() *Table {
	t, err := NewTable(defaultProfiles()...)
	if err != nil {
		panic(err)
	}

	return t
}
