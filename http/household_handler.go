package http

import (
	"net/http"

	"mortgage-planner/domain"
	"mortgage-planner/service"
)

type HouseholdHandler struct {
	service *service.HouseholdService
}

func NewHouseholdHandler(service *service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{service: service}
}

func (h *HouseholdHandler) FormFields(w http.ResponseWriter, r *http.Request) {
	var input domain.HouseholdRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.FormFields(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, result)
}
