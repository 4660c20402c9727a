package bulkimport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/shekhar1luitel/quizHub-sub001/internal/config"
)

const (
	excelMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxUploadBytes = 10 << 20
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.Detail(w, http.StatusBadRequest, "Upload an Excel .xlsx workbook.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.Detail(w, http.StatusBadRequest, "Upload an Excel .xlsx workbook.")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		config.Detail(w, http.StatusBadRequest, "Upload an Excel .xlsx workbook.")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		log.WithError(err).Error("Failed to read uploaded workbook")
		config.Detail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(content) == 0 {
		config.Detail(w, http.StatusBadRequest, "File is empty.")
		return
	}

	preview, err := h.service.Preview(r.Context(), content)
	if err != nil {
		if errors.Is(err, ErrMalformedWorkbook) {
			config.Detail(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("Failed to build bulk import preview")
		config.Detail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, preview)
}

func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload CommitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid bulk import commit body")
		config.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Commit(r.Context(), &payload)
	if err != nil {
		var commitErr *CommitError
		if errors.As(err, &commitErr) {
			config.Detail(w, commitErr.Status, commitErr.Detail)
			return
		}
		log.WithError(err).Error("Failed to commit bulk import")
		config.Detail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	workbook, err := h.service.Template(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build template workbook")
		config.Detail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeWorkbook(w, workbook, "bulk-import-template.xlsx")
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	workbook, err := h.service.Export(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build export workbook")
		config.Detail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeWorkbook(w, workbook, "bulk-import-export.xlsx")
}

func writeWorkbook(w http.ResponseWriter, workbook []byte, filename string) {
	w.Header().Set("Content-Type", excelMediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
