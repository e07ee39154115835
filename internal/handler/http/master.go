package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Client handlers
	CreateClient(w http.ResponseWriter, r *http.Request)
	GetClient(w http.ResponseWriter, r *http.Request)
	ListClients(w http.ResponseWriter, r *http.Request)
	UpdateClient(w http.ResponseWriter, r *http.Request)
	DeleteClient(w http.ResponseWriter, r *http.Request)

	// Vehicle handlers
	CreateVehicle(w http.ResponseWriter, r *http.Request)
	GetVehicle(w http.ResponseWriter, r *http.Request)
	ListVehicles(w http.ResponseWriter, r *http.Request)
	UpdateVehicle(w http.ResponseWriter, r *http.Request)
	DeleteVehicle(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== CLIENT HANDLERS ====================

func (h *masterHandlerImpl) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Client created successfully", result)
}

func (h *masterHandlerImpl) GetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetClient(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListClients(w http.ResponseWriter, r *http.Request) {
	var filter client.ClientFilter
	filter.Search = queryString(r, "search")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.masterService.ListClients(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *masterHandlerImpl) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateClient(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Client updated successfully", result)
}

func (h *masterHandlerImpl) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteClient(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Client deleted successfully", nil)
}

// ==================== VEHICLE HANDLERS ====================

func (h *masterHandlerImpl) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicle.CreateVehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateVehicle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vehicle created successfully", result)
}

func (h *masterHandlerImpl) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetVehicle(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListVehicles(w http.ResponseWriter, r *http.Request) {
	var filter vehicle.VehicleFilter
	filter.Type = queryString(r, "type")
	filter.Search = queryString(r, "search")
	isActive, ok := queryBool(r, "is_active")
	if !ok {
		response.BadRequest(w, "invalid is_active parameter", nil)
		return
	}
	filter.IsActive = isActive
	filter.Page, filter.Limit = pagination(r)

	result, err := h.masterService.ListVehicles(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *masterHandlerImpl) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicle.UpdateVehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateVehicle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle updated successfully", result)
}

func (h *masterHandlerImpl) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteVehicle(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle deleted successfully", nil)
}
