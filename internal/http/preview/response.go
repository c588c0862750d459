package preview

import (
	"time"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
)

type inputsResponse struct {
	Region         string               `json:"region"`
	Category       string               `json:"category"`
	Type           string               `json:"type"`
	Mode           string               `json:"mode"`
	LinkSupporting bool                 `json:"link_supporting"`
	PONumber       bool                 `json:"po_number"`
	Manual         document.ManualInput `json:"manual"`
}

type recordResponse struct {
	Kind        string        `json:"kind"`
	Counterpart string        `json:"counterpart"`
	Address     string        `json:"address"`
	Date        string        `json:"date"`
	Total       string        `json:"total"`
	Tax         string        `json:"tax"`
	Subtotal    string        `json:"subtotal"`
	Display     displayFields `json:"display"`
	Body        document.Body `json:"body"`
}

// displayFields are the region formatted values shown on the page.
type displayFields struct {
	Date  string `json:"date"`
	Total string `json:"total"`
	Tax   string `json:"tax"`
}

type previewResponse struct {
	State  string         `json:"state"`
	Stale  bool           `json:"stale"`
	Issuer string         `json:"issuer"`
	Inputs inputsResponse `json:"inputs"`
	Record recordResponse `json:"record"`
}

func toResponse(s preview.Snapshot) previewResponse {
	rec := s.Record

	return previewResponse{
		State:  s.State.String(),
		Stale:  s.Stale,
		Issuer: s.Issuer,
		Inputs: inputsResponse{
			Region:         s.Inputs.Region,
			Category:       string(s.Inputs.Category),
			Type:           s.Inputs.DocType,
			Mode:           string(s.Inputs.Mode),
			LinkSupporting: s.Inputs.LinkSupporting,
			PONumber:       s.Inputs.WithPONumber,
			Manual:         s.Inputs.Manual.Input(),
		},
		Record: recordResponse{
			Kind:        string(rec.Kind),
			Counterpart: rec.Counterpart,
			Address:     rec.Address,
			Date:        rec.Date.Format(time.DateOnly),
			Total:       rec.Total.StringFixed(2),
			Tax:         rec.Tax.StringFixed(2),
			Subtotal:    rec.Subtotal().StringFixed(2),
			Display: displayFields{
				Date:  s.Profile.FormatDate(rec.Date),
				Total: s.Profile.FormatMoney(rec.Total),
				Tax:   s.Profile.FormatMoney(rec.Tax),
			},
			Body: rec.Body,
		},
	}
}
