package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type BillHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	// Export handles GET /bills/{id}/export?format=pdf|xlsx
	Export(w http.ResponseWriter, r *http.Request)
	// Prefill handles GET /bills/prefill
	Prefill(w http.ResponseWriter, r *http.Request)
}

type billHandlerImpl struct {
	billService bill.BillService
}

func NewBillHandler(billService bill.BillService) BillHandler {
	return &billHandlerImpl{billService: billService}
}

func (h *billHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req bill.BillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.billService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bill created successfully", result)
}

func (h *billHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.billService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *billHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter bill.BillFilter
	filter.VehicleID = queryString(r, "vehicle_id")
	filter.ClientID = queryString(r, "client_id")

	month, ok := queryInt(r, "month")
	if !ok {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}
	filter.Month, filter.Year = month, year
	filter.Page, filter.Limit = pagination(r)

	result, err := h.billService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *billHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req bill.BillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.billService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bill updated successfully", result)
}

func (h *billHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.billService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bill deleted successfully", nil)
}

func (h *billHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if format == export.FormatJSON {
		format = export.FormatPDF
	}

	file, err := h.billService.Export(r.Context(), chi.URLParam(r, "id"), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file)
}

func (h *billHandlerImpl) Prefill(w http.ResponseWriter, r *http.Request) {
	month, ok := queryInt(r, "month")
	if !ok {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	req := bill.PrefillRequest{
		VehicleID: r.URL.Query().Get("vehicle_id"),
		ClientID:  r.URL.Query().Get("client_id"),
	}
	if month != nil {
		req.Month = *month
	}
	if year != nil {
		req.Year = *year
	}

	result, err := h.billService.Prefill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
