package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

func (h *paymentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payment.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.paymentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded successfully", result)
}

func (h *paymentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter payment.PaymentFilter
	filter.ClientID = queryString(r, "client_id")
	filter.JobID = queryString(r, "job_id")
	filter.Method = queryString(r, "method")
	filter.DateFrom = queryString(r, "date_from")
	filter.DateTo = queryString(r, "date_to")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.paymentService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *paymentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payment.UpdatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.paymentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment updated successfully", result)
}

func (h *paymentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.paymentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}
