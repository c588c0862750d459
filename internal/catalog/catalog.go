// Package catalog holds the closed set of document categories and the
// ordered document types each one offers.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
)

type Category string

const (
	Costs    Category = "COSTS"
	Sales    Category = "SALES"
	Vault    Category = "VAULT"
	Bank     Category = "BANK"
	Supplier Category = "SUPPLIER"
)

// Type is one selectable document type and the record kind it produces.
type Type struct {
	Name string
	Kind document.Kind
}

type Entry struct {
	Code          Category
	Name          string
	Types         []Type
	ManualAllowed bool
}

// DefaultType is the type selected when the category is activated.
func (e Entry) DefaultType() string {
	return e.Types[0].Name
}

func (e Entry) TypeNames() []string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.Name
	}

	return names
}

type Catalog struct {
	entries []Entry
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{entries: []Entry{
		{
			Code:          Costs,
			Name:          "Costs",
			ManualAllowed: true,
			Types: []Type{
				{Name: "Receipt", Kind: document.KindReceipt},
				{Name: "Invoice", Kind: document.KindInvoice},
				{Name: "Credit Note", Kind: document.KindCreditNote},
			},
		},
		{
			Code:          Sales,
			Name:          "Sales",
			ManualAllowed: true,
			Types: []Type{
				{Name: "Sales Invoice", Kind: document.KindInvoice},
				{Name: "Sales Receipt", Kind: document.KindReceipt},
				{Name: "Sales Credit Note", Kind: document.KindCreditNote},
			},
		},
		{
			Code: Vault,
			Name: "Vault",
			Types: []Type{
				{Name: "Insurance Policy", Kind: document.KindVault},
				{Name: "Tax Filing", Kind: document.KindVault},
				{Name: "Tenancy Agreement", Kind: document.KindVault},
			},
		},
		{
			Code:          Bank,
			Name:          "Bank Statements",
			ManualAllowed: true,
			Types: []Type{
				{Name: "Bank Statement", Kind: document.KindBank},
				{Name: "ATM Slip", Kind: document.KindATM},
			},
		},
		{
			Code:          Supplier,
			Name:          "Supplier Statements",
			ManualAllowed: true,
			Types: []Type{
				{Name: "Supplier Statement", Kind: document.KindStatement},
			},
		},
	}}
}

func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Catalog) Codes() []Category {
	codes := make([]Category, len(c.entries))
	for i, e := range c.entries {
		codes[i] = e.Code
	}

	return codes
}

// Entry looks up a category, accepting any letter case.
func (c *Catalog) Entry(code Category) (Entry, error) {
	want := Category(strings.ToUpper(strings.TrimSpace(string(code))))

	for _, e := range c.entries {
		if e.Code == want {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("%w: unknown category %q", document.ErrConfiguration, code)
}

// Resolve maps a (category, type) selection to the catalog type, matched
// case-insensitively. A type that belongs to a different category is rejected.
func (c *Catalog) Resolve(code Category, docType string) (Entry, Type, error) {
	e, err := c.Entry(code)
	if err != nil {
		return Entry{}, Type{}, err
	}

	for _, t := range e.Types {
		if strings.EqualFold(t.Name, strings.TrimSpace(docType)) {
			return e, t, nil
		}
	}

	return Entry{}, Type{}, fmt.Errorf("%w: category %s has no type %q", document.ErrConfiguration, e.Code, docType)
}
