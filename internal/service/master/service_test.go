package master

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	clients map[string]client.Client
}

func (f *fakeClientRepo) Create(_ context.Context, c client.Client) (client.Client, error) {
	for _, existing := range f.clients {
		if existing.Name == c.Name {
			return client.Client{}, client.ErrClientNameExists
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) List(_ context.Context, _ client.ClientFilter) ([]client.Client, int64, error) {
	var out []client.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClientRepo) Update(_ context.Context, req client.UpdateClientRequest) error {
	c, ok := f.clients[req.ID]
	if !ok {
		return client.ErrClientNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	f.clients[req.ID] = c
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.clients[id]; !ok {
		return client.ErrClientNotFound
	}
	delete(f.clients, id)
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]vehicle.Vehicle
}

func (f *fakeVehicleRepo) Create(_ context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	for _, existing := range f.vehicles {
		if existing.RegistrationNo == v.RegistrationNo {
			return vehicle.Vehicle{}, vehicle.ErrRegistrationNumberExists
		}
	}
	v.ID = uuid.NewString()
	f.vehicles[v.ID] = v
	return v, nil
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id string) (vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
	}
	return v, nil
}

func (f *fakeVehicleRepo) List(_ context.Context, filter vehicle.VehicleFilter) ([]vehicle.Vehicle, int64, error) {
	var out []vehicle.Vehicle
	for _, v := range f.vehicles {
		if filter.Type != nil && string(v.Type) != *filter.Type {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, req vehicle.UpdateVehicleRequest) error {
	v, ok := f.vehicles[req.ID]
	if !ok {
		return vehicle.ErrVehicleNotFound
	}
	if req.RegistrationNo != nil {
		v.RegistrationNo = *req.RegistrationNo
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	f.vehicles[req.ID] = v
	return nil
}

func (f *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	delete(f.vehicles, id)
	return nil
}

func newMasterService() (MasterService, *fakeClientRepo, *fakeVehicleRepo) {
	clients := &fakeClientRepo{clients: map[string]client.Client{}}
	vehicles := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{}}
	return NewMasterService(clients, vehicles), clients, vehicles
}

func TestClientLifecycle(t *testing.T) {
	svc, _, _ := newMasterService()
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, client.CreateClientRequest{Name: "  Sharma Builders "})
	require.NoError(t, err)
	assert.Equal(t, "Sharma Builders", created.Name)

	_, err = svc.CreateClient(ctx, client.CreateClientRequest{Name: "Sharma Builders"})
	assert.ErrorIs(t, err, client.ErrClientNameExists)

	phone := "+919876543210"
	updated, err := svc.UpdateClient(ctx, client.UpdateClientRequest{ID: created.ID, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, &phone, updated.Phone)

	list, err := svc.ListClients(ctx, client.ClientFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)

	require.NoError(t, svc.DeleteClient(ctx, created.ID))
	_, err = svc.GetClient(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestCreateClient_Validation(t *testing.T) {
	svc, _, _ := newMasterService()
	_, err := svc.CreateClient(context.Background(), client.CreateClientRequest{Name: " "})
	assert.Error(t, err)
}

func TestVehicle_RegistrationNormalised(t *testing.T) {
	svc, _, vehicles := newMasterService()
	ctx := context.Background()

	created, err := svc.CreateVehicle(ctx, vehicle.CreateVehicleRequest{RegistrationNo: "ka 01  ab 1234", Type: "jcb"})
	require.NoError(t, err)
	assert.Equal(t, "KA 01 AB 1234", created.RegistrationNo)
	assert.True(t, created.IsActive)

	_, err = svc.CreateVehicle(ctx, vehicle.CreateVehicleRequest{RegistrationNo: "KA 01 AB 1234", Type: "lorry"})
	assert.ErrorIs(t, err, vehicle.ErrRegistrationNumberExists)

	inactive := false
	updated, err := svc.UpdateVehicle(ctx, vehicle.UpdateVehicleRequest{ID: created.ID, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Len(t, vehicles.vehicles, 1)
}

func TestCreateVehicle_InvalidType(t *testing.T) {
	svc, _, _ := newMasterService()
	_, err := svc.CreateVehicle(context.Background(), vehicle.CreateVehicleRequest{RegistrationNo: "KA01", Type: "tractor"})
	assert.Error(t, err)
}

func TestListVehicles_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := newMasterService()
	lorry := "lorry"
	list, err := svc.ListVehicles(context.Background(), vehicle.VehicleFilter{Type: &lorry, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, list.Data)
	assert.Empty(t, list.Data)
}
