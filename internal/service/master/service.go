package master

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
)

type MasterService interface {
	// Client operations
	CreateClient(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error)
	GetClient(ctx context.Context, id string) (client.ClientResponse, error)
	ListClients(ctx context.Context, filter client.ClientFilter) (client.ListClientResponse, error)
	UpdateClient(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error

	// Vehicle operations
	CreateVehicle(ctx context.Context, req vehicle.CreateVehicleRequest) (vehicle.VehicleResponse, error)
	GetVehicle(ctx context.Context, id string) (vehicle.VehicleResponse, error)
	ListVehicles(ctx context.Context, filter vehicle.VehicleFilter) (vehicle.ListVehicleResponse, error)
	UpdateVehicle(ctx context.Context, req vehicle.UpdateVehicleRequest) (vehicle.VehicleResponse, error)
	DeleteVehicle(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	clientRepo  client.ClientRepository
	vehicleRepo vehicle.VehicleRepository
}

func NewMasterService(
	clientRepo client.ClientRepository,
	vehicleRepo vehicle.VehicleRepository,
) MasterService {
	return &masterServiceImpl{
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
	}
}

// ==================== CLIENT OPERATIONS ====================

func (s *masterServiceImpl) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	created, err := s.clientRepo.Create(ctx, client.Client{
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		return client.ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}

	return client.NewClientResponse(created), nil
}

func (s *masterServiceImpl) GetClient(ctx context.Context, id string) (client.ClientResponse, error) {
	entity, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.NewClientResponse(entity), nil
}

func (s *masterServiceImpl) ListClients(ctx context.Context, filter client.ClientFilter) (client.ListClientResponse, error) {
	clients, total, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return client.ListClientResponse{}, fmt.Errorf("failed to list clients: %w", err)
	}

	// Return an empty list instead of null
	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.NewClientResponse(c))
	}

	return client.ListClientResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *masterServiceImpl) UpdateClient(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.clientRepo.Update(ctx, req); err != nil {
		return client.ClientResponse{}, err
	}

	return s.GetClient(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteClient(ctx context.Context, id string) error {
	return s.clientRepo.Delete(ctx, id)
}

// ==================== VEHICLE OPERATIONS ====================

func (s *masterServiceImpl) CreateVehicle(ctx context.Context, req vehicle.CreateVehicleRequest) (vehicle.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.vehicleRepo.Create(ctx, vehicle.Vehicle{
		RegistrationNo: normalizeRegistration(req.RegistrationNo),
		Type:           vehicle.Type(req.Type),
		Model:          req.Model,
		IsActive:       isActive,
		Notes:          req.Notes,
	})
	if err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle.NewVehicleResponse(created), nil
}

func (s *masterServiceImpl) GetVehicle(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	entity, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	return vehicle.NewVehicleResponse(entity), nil
}

func (s *masterServiceImpl) ListVehicles(ctx context.Context, filter vehicle.VehicleFilter) (vehicle.ListVehicleResponse, error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return vehicle.ListVehicleResponse{}, fmt.Errorf("failed to list vehicles: %w", err)
	}

	responses := make([]vehicle.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, vehicle.NewVehicleResponse(v))
	}

	return vehicle.ListVehicleResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *masterServiceImpl) UpdateVehicle(ctx context.Context, req vehicle.UpdateVehicleRequest) (vehicle.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}
	if req.RegistrationNo != nil {
		reg := normalizeRegistration(*req.RegistrationNo)
		req.RegistrationNo = &reg
	}

	if err := s.vehicleRepo.Update(ctx, req); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	return s.GetVehicle(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteVehicle(ctx context.Context, id string) error {
	return s.vehicleRepo.Delete(ctx, id)
}

// normalizeRegistration upper-cases and collapses whitespace so "ka 01  ab 1234" and
// "KA 01 AB 1234" collide on the unique index.
func normalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), " "))
}
