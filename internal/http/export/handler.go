package export

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/export"
	"github.com/MrJamesThe3rd/mockuments/internal/http/httperr"
	"github.com/MrJamesThe3rd/mockuments/internal/output"
)

type Exporter interface {
	ExportBatch(ctx context.Context, req export.Request, sink output.Sink) (*export.Result, error)
}

// SinkFunc opens the configured storage destination.
type SinkFunc func(ctx context.Context) (output.Sink, error)

type Handler struct {
	svc   Exporter
	store SinkFunc
}

func NewHandler(svc Exporter, store SinkFunc) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.export)
}

type exportRequest struct {
	Category       string                `json:"category" validate:"required"`
	Type           string                `json:"type" validate:"required"`
	Region         string                `json:"region" validate:"required"`
	Mode           string                `json:"mode"`
	Quantity       int                   `json:"quantity"`
	LinkSupporting bool                  `json:"link_supporting"`
	PONumber       bool                  `json:"po_number"`
	Manual         *document.ManualInput `json:"manual,omitempty"`
}

type exportResponse struct {
	BatchID   uuid.UUID `json:"batch_id"`
	Files     []string  `json:"files"`
	Archive   string    `json:"archive,omitempty"`
	Delivered int       `json:"delivered"`
}

func (r exportRequest) toRequest() (export.Request, error) {
	if err := document.ValidateStruct(r); err != nil {
		return export.Request{}, err
	}

	mode := document.ModeAutomated
	if strings.TrimSpace(r.Mode) != "" {
		m, err := document.ParseMode(r.Mode)
		if err != nil {
			return export.Request{}, err
		}

		mode = m
	}

	req := export.Request{
		Region:         r.Region,
		Category:       catalog.Category(r.Category),
		DocType:        r.Type,
		Mode:           mode,
		Quantity:       r.Quantity,
		LinkSupporting: r.LinkSupporting,
		WithPONumber:   r.PONumber,
	}

	if r.Manual != nil {
		m, err := document.ParseManual(*r.Manual)
		if err != nil {
			return export.Request{}, err
		}

		req.Manual = &m
	}

	return req, nil
}

// export runs a batch. By default the PDF or zip is streamed back as an
// attachment; with ?target=store it is saved to the configured storage and
// the batch summary is returned instead.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperr.Write(w, r, &document.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	req, err := body.toRequest()
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	if r.URL.Query().Get("target") == "store" {
		h.exportToStore(w, r, req)
		return
	}

	sink := output.NewResponseSink(w)

	res, err := h.svc.ExportBatch(r.Context(), req, sink)
	if err != nil {
		if sink.Written() {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("export failed after response was sent")
			return
		}

		httperr.Write(w, r, err)

		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("batch_id", res.BatchID.String()).
		Int("files", len(res.Files)).
		Msg("export delivered")
}

func (h *Handler) exportToStore(w http.ResponseWriter, r *http.Request, req export.Request) {
	sink, err := h.store(r.Context())
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	res, err := h.svc.ExportBatch(r.Context(), req, sink)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	httperr.JSON(w, r, http.StatusCreated, exportResponse{
		BatchID:   res.BatchID,
		Files:     res.Files,
		Archive:   res.Archive,
		Delivered: res.Delivered,
	})
}
