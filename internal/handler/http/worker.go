package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	// AttendanceSummary handles GET /workers/{id}/attendance/summary
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService     worker.WorkerService
	attendanceService attendance.AttendanceService
}

func NewWorkerHandler(workerService worker.WorkerService, attendanceService attendance.AttendanceService) WorkerHandler {
	return &workerHandlerImpl{
		workerService:     workerService,
		attendanceService: attendanceService,
	}
}

func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.workerService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", result)
}

func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.workerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter worker.WorkerFilter
	filter.SalaryType = queryString(r, "salary_type")
	filter.Search = queryString(r, "search")
	isActive, ok := queryBool(r, "is_active")
	if !ok {
		response.BadRequest(w, "invalid is_active parameter", nil)
		return
	}
	filter.IsActive = isActive
	filter.Page, filter.Limit = pagination(r)

	result, err := h.workerService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.workerService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", result)
}

func (h *workerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted successfully", nil)
}

func (h *workerHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.SummaryRequest{
		WorkerID: chi.URLParam(r, "id"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
