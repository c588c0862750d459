package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mockuments/internal/http/httperr"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler reports whether the rasterizer is reachable.
type Handler struct {
	rasterizer Pinger
}

func NewHandler(rasterizer Pinger) *Handler {
	return &Handler{rasterizer: rasterizer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.check)
}

type response struct {
	Status    string `json:"status"`
	Gotenberg string `json:"gotenberg"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	if err := h.rasterizer.Ping(r.Context()); err != nil {
		httperr.JSON(w, r, http.StatusServiceUnavailable, response{Status: "degraded", Gotenberg: err.Error()})
		return
	}

	httperr.JSON(w, r, http.StatusOK, response{Status: "ok", Gotenberg: "up"})
}
