package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/tempo/internal/auth/grant"
	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/platform/locale"
	"github.com/louisbranch/tempo/internal/timer/domain"
	"github.com/louisbranch/tempo/internal/timer/service"
)

type apiHandler struct {
	service *service.Service
}

type stepPayload struct {
	OrderIndex      int    `json:"order_index"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	Repetitions     int    `json:"repetitions,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type createTimerPayload struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Steps       []stepPayload `json:"steps,omitempty"`
}

type updateTimerPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type stepResponse struct {
	ID              string `json:"id"`
	OrderIndex      int    `json:"order_index"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	Repetitions     int    `json:"repetitions"`
	Notes           string `json:"notes,omitempty"`
}

type timerResponse struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description,omitempty"`
	Steps                []stepResponse `json:"steps"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type listTimersResponse struct {
	Timers        []timerResponse `json:"timers"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

func toStepInput(p stepPayload) domain.StepInput {
	return domain.StepInput{
		OrderIndex:      p.OrderIndex,
		Title:           p.Title,
		DurationSeconds: p.DurationSeconds,
		Repetitions:     p.Repetitions,
		Notes:           p.Notes,
	}
}

func toTimerResponse(timer domain.Timer) timerResponse {
	steps := make([]stepResponse, 0, len(timer.Steps))
	for _, step := range timer.Steps {
		steps = append(steps, stepResponse{
			ID:              step.ID,
			OrderIndex:      step.OrderIndex,
			Title:           step.Title,
			DurationSeconds: step.DurationSeconds,
			Repetitions:     step.Repetitions,
			Notes:           step.Notes,
		})
	}
	return timerResponse{
		ID:                   timer.ID,
		Name:                 timer.Name,
		Description:          timer.Description,
		Steps:                steps,
		TotalDurationSeconds: timer.TotalDurationSeconds(),
		CreatedAt:            timer.CreatedAt,
		UpdatedAt:            timer.UpdatedAt,
	}
}

func (h *apiHandler) handleListTimers(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())

	pageSize := 0
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}

	result, err := h.service.ListTimers(r.Context(), ownerID, service.ListTimersRequest{
		Filter:    r.URL.Query().Get("filter"),
		PageSize:  pageSize,
		PageToken: r.URL.Query().Get("page_token"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := listTimersResponse{
		Timers:        make([]timerResponse, 0, len(result.Timers)),
		NextPageToken: result.NextPageToken,
	}
	for _, timer := range result.Timers {
		resp.Timers = append(resp.Timers, toTimerResponse(timer))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *apiHandler) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())
	timer, err := h.service.GetTimer(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimerResponse(timer))
}

func (h *apiHandler) handleCreateTimer(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())

	var payload createTimerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, badRequestBody(err))
		return
	}

	input := domain.CreateTimerInput{
		Name:        payload.Name,
		Description: payload.Description,
	}
	for _, step := range payload.Steps {
		input.Steps = append(input.Steps, toStepInput(step))
	}

	timer, err := h.service.CreateTimer(r.Context(), ownerID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTimerResponse(timer))
}

func (h *apiHandler) handleUpdateTimer(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())

	var payload updateTimerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, badRequestBody(err))
		return
	}

	timer, err := h.service.UpdateTimer(r.Context(), ownerID, r.PathValue("id"), domain.UpdateTimerInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimerResponse(timer))
}

func (h *apiHandler) handleDeleteTimer(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())
	if err := h.service.DeleteTimer(r.Context(), ownerID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandler) handleAddStep(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())

	var payload stepPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, badRequestBody(err))
		return
	}

	step, err := h.service.AddStep(r.Context(), ownerID, r.PathValue("id"), toStepInput(payload))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stepResponse{
		ID:              step.ID,
		OrderIndex:      step.OrderIndex,
		Title:           step.Title,
		DurationSeconds: step.DurationSeconds,
		Repetitions:     step.Repetitions,
		Notes:           step.Notes,
	})
}

func (h *apiHandler) handleRemoveStep(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())
	err := h.service.RemoveStep(r.Context(), ownerID, r.PathValue("id"), r.PathValue("stepID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func badRequestBody(cause error) error {
	return apperrors.Wrap(apperrors.CodeRequestInvalid, "request body is invalid", cause)
}

// requestLocale picks the response language from the lang query parameter,
// falling back to the Accept-Language header.
func requestLocale(r *http.Request) string {
	return locale.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("internal error handling %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(apperrors.GetCode(err)),
		Message: apperrors.Localize(err, requestLocale(r)),
	}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
