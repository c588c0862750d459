package preview

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/http/httperr"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

type Handler struct {
	controller *preview.Controller
	surface    *render.Surface
}

func NewHandler(controller *preview.Controller, surface *render.Surface) *Handler {
	return &Handler{controller: controller, surface: surface}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Get("/page", h.page)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Put("/", h.update)
		r.Patch("/manual", h.updateManual)
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httperr.JSON(w, r, http.StatusOK, toResponse(h.controller.Snapshot()))
}

// page returns the laid out HTML currently on the render surface.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	p, err := h.surface.Page()
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := w.Write([]byte(p.HTML)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write page")
	}
}

type updateRequest struct {
	Region         *string `json:"region,omitempty"`
	Category       *string `json:"category,omitempty"`
	Type           *string `json:"type,omitempty"`
	Mode           *string `json:"mode,omitempty"`
	LinkSupporting *bool   `json:"link_supporting,omitempty"`
	PONumber       *bool   `json:"po_number,omitempty"`
}

// update applies the given selections in dependency order: region, then
// category (which resets the type), then type and mode.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, r, &document.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	if err := h.apply(req); err != nil {
		httperr.Write(w, r, err)
		return
	}

	httperr.JSON(w, r, http.StatusOK, toResponse(h.controller.Snapshot()))
}

func (h *Handler) apply(req updateRequest) error {
	c := h.controller

	if req.Region != nil {
		if err := c.SetRegion(*req.Region); err != nil {
			return err
		}
	}

	if req.Category != nil {
		if err := c.SetCategory(catalog.Category(*req.Category)); err != nil {
			return err
		}
	}

	if req.Type != nil {
		if err := c.SetDocType(*req.Type); err != nil {
			return err
		}
	}

	if req.Mode != nil {
		mode, err := document.ParseMode(*req.Mode)
		if err != nil {
			return err
		}

		if err := c.SetMode(mode); err != nil {
			return err
		}
	}

	if req.PONumber != nil {
		if err := c.SetWithPONumber(*req.PONumber); err != nil {
			return fmt.Errorf("toggling PO number: %w", err)
		}
	}

	if req.LinkSupporting != nil {
		c.SetLinkSupporting(*req.LinkSupporting)
	}

	return nil
}

func (h *Handler) updateManual(w http.ResponseWriter, r *http.Request) {
	var in document.ManualInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperr.Write(w, r, &document.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	if err := h.controller.SetManual(in); err != nil {
		httperr.Write(w, r, err)
		return
	}

	httperr.JSON(w, r, http.StatusOK, toResponse(h.controller.Snapshot()))
}
