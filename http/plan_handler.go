package http

import (
	"bytes"
	"net/http"

	"mortgage-planner/domain"
	"mortgage-planner/export"
	"mortgage-planner/logging"
	"mortgage-planner/service"
)

type PlanHandler struct {
	service *service.MortgageService
}

func NewPlanHandler(service *service.MortgageService) *PlanHandler {
	return &PlanHandler{service: service}
}

// CalculatePlan answers with the plan as JSON, or with its table as a CSV
// or JSON download when called with ?format=csv or ?format=json.
func (h *PlanHandler) CalculatePlan(w http.ResponseWriter, r *http.Request) {
	var input domain.PlanRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CalculatePlan(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		writeDownload(w, r, "text/csv; charset=utf-8", "nedbetalingsplan-"+result.ID+".csv",
			func(buf *bytes.Buffer) error { return export.WriteCSV(buf, result.Rows) })
	case "json":
		writeDownload(w, r, "application/json", "nedbetalingsplan-"+result.ID+".json",
			func(buf *bytes.Buffer) error { return export.WriteJSON(buf, result.Rows) })
	default:
		writeJSON(w, r, result)
	}
}

// writeDownload renders the table as an attachment named filename.
func writeDownload(w http.ResponseWriter, r *http.Request, contentType, filename string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logging.FromContext(r.Context()).Error("Error rendering plan table", logging.FieldError, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("Error writing response", logging.FieldError, err)
	}
}

func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.service.FindPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, result)
}

func (h *PlanHandler) ComparePlans(w http.ResponseWriter, r *http.Request) {
	var input domain.PlanRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.ComparePlans(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, result)
}
