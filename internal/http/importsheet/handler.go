package importsheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vendas/internal/auth"
	"github.com/MrJamesThe3rd/vendas/internal/importer"
	"github.com/MrJamesThe3rd/vendas/internal/sale"
	"github.com/MrJamesThe3rd/vendas/internal/sheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	importSvc *importer.Service
	maxUpload int64
}

func NewHandler(importSvc *importer.Service, maxUpload int64) *Handler {
	return &Handler{
		importSvc: importSvc,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Get("/template", h.template)
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

type recordsResponse struct {
	Records []sale.Sale `json:"records"`
}

// preview runs the uploaded workbook through the pipeline without storing
// anything. The dashboard submits the returned records to /sales.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	src := importer.Source{
		CompanyID: auth.CompanyFromContext(r.Context()),
		FileName:  header.Filename,
	}

	outcome, err := h.importSvc.Import(src, file)

	switch {
	case errors.Is(err, importer.ErrNoRows):
		http.Error(w, "a planilha não contém linhas de dados", http.StatusBadRequest)
		return
	case errors.Is(err, sheet.ErrHeaderMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		slog.Warn("failed to decode upload", "file", header.Filename, "error", err)
		http.Error(w, "não foi possível ler a planilha", http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if !outcome.OK() {
		w.WriteHeader(http.StatusUnprocessableEntity)

		if err := json.NewEncoder(w).Encode(errorsResponse{Errors: outcome.Messages()}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	records := outcome.Records
	if records == nil {
		records = []sale.Sale{}
	}

	if err := json.NewEncoder(w).Encode(recordsResponse{Records: records}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) template(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := sheet.WriteTemplate(&buf); err != nil {
		slog.Error("failed to build template", "error", err)
		http.Error(w, "failed to build template", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+sheet.TemplateFileName+`"`)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write template", "error", err)
	}
}
