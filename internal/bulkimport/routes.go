package bulkimport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/preview", h.Preview)
	r.Post("/commit", h.Commit)
	r.Get("/template", h.Template)
	r.Get("/export", h.Export)
	return r
}
