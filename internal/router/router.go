package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shekhar1luitel/quizHub-sub001/internal/auth"
	"github.com/shekhar1luitel/quizHub-sub001/internal/bulkimport"
	"github.com/shekhar1luitel/quizHub-sub001/internal/middlewares"
)

type RouterConfig struct {
	BulkImportHandler *bulkimport.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Use(auth.RequireRole("admin"))

		r.Mount("/admin/bulk-import", bulkimport.Routes(cfg.BulkImportHandler))
	})

	return r
}
