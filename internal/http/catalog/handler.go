package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/http/httperr"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

// Handler serves the static reference data: document categories and
// region profiles.
type Handler struct {
	catalog *catalog.Catalog
	regions *region.Table
}

func NewHandler(cat *catalog.Catalog, regions *region.Table) *Handler {
	return &Handler{catalog: cat, regions: regions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/catalog", h.listCatalog)
	r.Get("/regions", h.listRegions)
}

type typeResponse struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type entryResponse struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	DefaultType   string         `json:"default_type"`
	ManualAllowed bool           `json:"manual_allowed"`
	Types         []typeResponse `json:"types"`
}

type regionResponse struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	Locale     string  `json:"locale"`
	TaxLabel   string  `json:"tax_label"`
	TaxRate    float64 `json:"tax_rate"`
	DateFormat string  `json:"date_format"`
	Suppliers  int     `json:"suppliers"`
	Addresses  int     `json:"addresses"`
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()
	resp := make([]entryResponse, len(entries))

	for i, e := range entries {
		types := make([]typeResponse, len(e.Types))
		for j, t := range e.Types {
			types[j] = typeResponse{Name: t.Name, Kind: string(t.Kind)}
		}

		resp[i] = entryResponse{
			Code:          string(e.Code),
			Name:          e.Name,
			DefaultType:   e.DefaultType(),
			ManualAllowed: e.ManualAllowed,
			Types:         types,
		}
	}

	httperr.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) listRegions(w http.ResponseWriter, r *http.Request) {
	profiles := h.regions.Profiles()
	resp := make([]regionResponse, len(profiles))

	for i, p := range profiles {
		resp[i] = regionResponse{
			Code:       p.Code,
			Name:       p.Name,
			Currency:   p.Currency,
			Locale:     p.Locale.String(),
			TaxLabel:   p.TaxLabel,
			TaxRate:    p.TaxRate.InexactFloat64(),
			DateFormat: string(p.DateFormat),
			Suppliers:  len(p.Pool.Suppliers),
			Addresses:  len(p.Pool.Addresses),
		}
	}

	httperr.JSON(w, r, http.StatusOK, resp)
}
