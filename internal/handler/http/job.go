package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &jobHandlerImpl{jobService: jobService}
}

// Create handles POST /jobs
func (h *jobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req job.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.jobService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created successfully", result)
}

// Get handles GET /jobs/{id}
func (h *jobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /jobs
func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter job.JobFilter

	filter.Type = queryString(r, "type")
	filter.ClientID = queryString(r, "client_id")
	filter.VehicleID = queryString(r, "vehicle_id")
	filter.WorkerID = queryString(r, "worker_id")
	filter.Status = queryString(r, "status")
	filter.DateFrom = queryString(r, "date_from")
	filter.DateTo = queryString(r, "date_to")
	filter.Page, filter.Limit = pagination(r)
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	result, err := h.jobService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// Update handles PUT /jobs/{id}
func (h *jobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req job.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.jobService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated successfully", result)
}

// UpdateStatus handles PATCH /jobs/{id}/status
func (h *jobHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req job.UpdateJobStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.jobService.UpdateStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job status updated successfully", nil)
}

// Delete handles DELETE /jobs/{id}
func (h *jobHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job deleted successfully", nil)
}
