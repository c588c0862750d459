package region

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
)

// DateConvention is the day/month ordering a region prints dates in.
type DateConvention string

const (
	DayMonthYear DateConvention = "DD/MM/YYYY"
	MonthDayYear DateConvention = "MM/DD/YYYY"
)

func (c DateConvention) layout() string {
	if c == MonthDayYear {
		return "01/02/2006"
	}

	return "02/01/2006"
}

// Pool is the set of plausible counterpart names and postal addresses for a region.
type Pool struct {
	Suppliers []string
	Addresses []string
}

type Profile struct {
	Code       string
	Name       string
	Currency   string
	Locale     language.Tag
	TaxLabel   string
	TaxRate    decimal.Decimal
	DateFormat DateConvention
	Pool       Pool
}

var bankMarkers = []string{"Bank", "Paribas", "Barclays", "Commonwealth", "Chase", "Générale", "ANZ"}

func (p Profile) FormatDate(t time.Time) string {
	return t.Format(p.DateFormat.layout())
}

func (p Profile) FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + p.Currency + d.Abs().StringFixed(2)
	}

	return p.Currency + d.StringFixed(2)
}

// TaxPercent renders the rate as a whole-number percentage, e.g. "20".
func (p Profile) TaxPercent() string {
	return p.TaxRate.Mul(decimal.NewFromInt(100)).Round(2).String()
}

// BankNames returns the pool entries that look like banks, or the whole
// supplier pool when none do.
func (p Profile) BankNames() []string {
	var banks []string

	for _, s := range p.Pool.Suppliers {
		for _, m := range bankMarkers {
			if strings.Contains(s, m) {
				banks = append(banks, s)
				break
			}
		}
	}

	if len(banks) == 0 {
		return p.Pool.Suppliers
	}

	return banks
}

func (p Profile) Validate() error {
	switch {
	case p.Code == "":
		return fmt.Errorf("%w: region code is empty", document.ErrConfiguration)
	case p.Locale == language.Und:
		return fmt.Errorf("%w: region %s has no locale", document.ErrConfiguration, p.Code)
	case p.TaxRate.IsNegative() || p.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return fmt.Errorf("%w: region %s tax rate %s outside [0,1)", document.ErrConfiguration, p.Code, p.TaxRate)
	case p.DateFormat != DayMonthYear && p.DateFormat != MonthDayYear:
		return fmt.Errorf("%w: region %s date format %q", document.ErrConfiguration, p.Code, p.DateFormat)
	case len(p.Pool.Suppliers) < 2:
		return fmt.Errorf("%w: region %s needs at least two suppliers", document.ErrConfiguration, p.Code)
	case len(p.Pool.Addresses) == 0:
		return fmt.Errorf("%w: region %s has no addresses", document.ErrConfiguration, p.Code)
	}

	return nil
}

// Table is an immutable, validated set of region profiles.
type Table struct {
	order    []string
	profiles map[string]Profile
}

func NewTable(profiles ...Profile) (*Table, error) {
	t := &Table{profiles: make(map[string]Profile, len(profiles))}

	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if _, dup := t.profiles[p.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate region %s", document.ErrConfiguration, p.Code)
		}

		t.order = append(t.order, p.Code)
		t.profiles[p.Code] = p
	}

	return t, nil
}

// Lookup returns the profile for code, matched case-insensitively.
func (t *Table) Lookup(code string) (Profile, error) {
	p, ok := t.profiles[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown region %q", document.ErrLookup, code)
	}

	return p, nil
}

// Codes lists region codes in table order.
func (t *Table) Codes() []string {
	return slices.Clone(t.order)
}

func (t *Table) Profiles() []Profile {
	out := make([]Profile, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, t.profiles[c])
	}

	return out
}

// WithPools returns a copy of the table whose pools are replaced by the
// given ones. Regions missing from pools keep their current entries.
func (t *Table) WithPools(pools map[string]Pool) (*Table, error) {
	profiles := t.Profiles()

	for code := range pools {
		if _, ok := t.profiles[code]; !ok {
			return nil, fmt.Errorf("%w: pool for unknown region %q", document.ErrLookup, code)
		}
	}

	for i, p := range profiles {
		pool, ok := pools[p.Code]
		if !ok {
			continue
		}

		if len(pool.Suppliers) > 0 {
			p.Pool.Suppliers = pool.Suppliers
		}

		if len(pool.Addresses) > 0 {
			p.Pool.Addresses = pool.Addresses
		}

		profiles[i] = p
	}

	return NewTable(profiles...)
}
