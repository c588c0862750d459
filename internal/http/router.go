package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"

	"github.com/MrJamesThe3rd/mockuments/internal/http/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/http/export"
	"github.com/MrJamesThe3rd/mockuments/internal/http/health"
	mw "github.com/MrJamesThe3rd/mockuments/internal/http/middleware"
	"github.com/MrJamesThe3rd/mockuments/internal/http/preview"
)

const (
	exportRequestsPerMinute = 10
)

func New(
	logger *zerolog.Logger,
	catalogV1 *catalog.Handler,
	previewV1 *preview.Handler,
	exportV1 *export.Handler,
	healthV1 *health.Handler,
) http.Handler {
	router := chi.NewRouter()

	secureHeaders := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		// Page previews carry inline styles.
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'",
	})

	router.Use(middleware.RequestID)
	router.Use(mw.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(secureHeaders.Handler)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		catalogV1.Routes(r)

		r.Route("/preview", previewV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Use(httprate.Limit(exportRequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			exportV1.Routes(r)
		})
	})

	router.Route("/health", healthV1.Routes)

	return router
}
