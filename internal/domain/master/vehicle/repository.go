package vehicle

import "context"

type VehicleRepository interface {
	Create(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	GetByID(ctx context.Context, id string) (Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]Vehicle, int64, error)
	Update(ctx context.Context, req UpdateVehicleRequest) error
	Delete(ctx context.Context, id string) error
}
