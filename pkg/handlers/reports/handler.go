package reports

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/adapters"
	"github.com/fraud-tools/scam-report-builder/pkg/models/api"
	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/models/store"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
)

type Handler struct {
	reports  *report.Service
	registry *template.Registry
}

func NewHandler(reports *report.Service, registry *template.Registry) *Handler {
	return &Handler{reports: reports, registry: registry}
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var response []api.Template
	for _, tpl := range h.registry.List() {
		response = append(response, api.Template{
			Key:         tpl.Key,
			Name:        tpl.Name,
			Description: tpl.Description,
			Builtin:     tpl.Builtin,
		})
	}

	writeJSON(w, http.StatusOK, response, logger)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	key := chi.URLParam(r, "key")

	tpl, err := h.registry.Get(key)
	if errors.Is(err, template.ErrTemplateNotFound) {
		writeJSON(w, http.StatusNotFound, api.Error{Message: err.Error()}, logger)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, api.Error{Message: err.Error()}, logger)
		return
	}

	writeJSON(w, http.StatusOK, templateDetail(tpl), logger)
}

// exportRequest is the POST /reports body: the snapshot shape plus an
// explicit output path.
type exportRequest struct {
	ReportData   domain.ReportContent         `json:"report_data"`
	Images       map[string][]store.ImageBlob `json:"images"`
	TemplateKey  string                       `json:"template_key"`
	ReportNumber int                          `json:"report_number"`
	ReportFormat string                       `json:"report_format"`
	OutputPath   string                       `json:"output_path"`
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: "invalid request body: " + err.Error()}, logger)
		return
	}
	if req.ReportData == nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: "report_data is required"}, logger)
		return
	}

	images, err := adapters.ImagesFromSnapshot(store.ReportSnapshot{Images: req.Images})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: err.Error()}, logger)
		return
	}

	result, err := h.reports.Export(report.ExportRequest{
		Content:     req.ReportData,
		Images:      images,
		TemplateKey: req.TemplateKey,
		Number:      req.ReportNumber,
		Format:      req.ReportFormat,
		OutputPath:  req.OutputPath,
	})
	if errors.Is(err, template.ErrTemplateNotFound) || errors.Is(err, report.ErrNoReportsFolder) {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: err.Error()}, logger)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("report export failed")
		writeJSON(w, http.StatusInternalServerError, api.Error{Message: err.Error()}, logger)
		return
	}

	writeJSON(w, http.StatusOK, api.ExportResult{
		DocumentPath: result.DocumentPath,
		SnapshotPath: result.SnapshotPath,
		ReportNumber: result.Number,
	}, logger)
}

func templateDetail(tpl domain.Template) map[string]any {
	return map[string]any{
		"key":         tpl.Key,
		"name":        tpl.Name,
		"description": tpl.Description,
		"builtin":     tpl.Builtin,
		"sections":    tpl.Sections,
		"fields":      tpl.Fields,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
