package repository

import (
	"context"
	"fmt"

	"onnrides/internal/data/entity"
	"onnrides/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAvailable(ctx context.Context, vehicleType, location string, limit, offset int) ([]*entity.Vehicle, error)
	CountAvailable(ctx context.Context, vehicleType, location string) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, name, type, location, quantity, price_per_hour, price_7_days,
	       price_15_days, price_30_days, min_booking_hours, is_available, status,
	       description, images, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Type,
		&v.Location,
		&v.Quantity,
		&v.PricePerHour,
		&v.Price7Days,
		&v.Price15Days,
		&v.Price30Days,
		&v.MinBookingHours,
		&v.IsAvailable,
		&v.Status,
		&v.Description,
		&v.Images,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, type, location, quantity, price_per_hour,
		                      price_7_days, price_15_days, price_30_days, min_booking_hours,
		                      is_available, status, description, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.Location,
		vehicle.Quantity,
		vehicle.PricePerHour,
		vehicle.Price7Days,
		vehicle.Price15Days,
		vehicle.Price30Days,
		vehicle.MinBookingHours,
		vehicle.IsAvailable,
		vehicle.Status,
		vehicle.Description,
		vehicle.Images,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("name", vehicle.Name),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.Name, err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindAvailable(ctx context.Context, vehicleType, location string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE is_available = TRUE
		  AND status = 'active'
		  AND ($1 = '' OR type = $1)
		  AND ($2 = '' OR location = $2)
		ORDER BY name
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, vehicleType, location, limit, offset)
	if err != nil {
		r.log.Error("Failed to find available vehicles",
			zap.Error(err),
			zap.String("type", vehicleType),
			zap.String("location", location),
		)
		return nil, fmt.Errorf("find available vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) CountAvailable(ctx context.Context, vehicleType, location string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM vehicles
		WHERE is_available = TRUE
		  AND status = 'active'
		  AND ($1 = '' OR type = $1)
		  AND ($2 = '' OR location = $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, vehicleType, location).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count available vehicles", zap.Error(err))
		return 0, fmt.Errorf("count available vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, type = $3, location = $4, quantity = $5, price_per_hour = $6,
		    price_7_days = $7, price_15_days = $8, price_30_days = $9,
		    min_booking_hours = $10, is_available = $11, status = $12,
		    description = $13, images = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.Location,
		vehicle.Quantity,
		vehicle.PricePerHour,
		vehicle.Price7Days,
		vehicle.Price15Days,
		vehicle.Price30Days,
		vehicle.MinBookingHours,
		vehicle.IsAvailable,
		vehicle.Status,
		vehicle.Description,
		vehicle.Images,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update vehicle status",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update vehicle %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("delete vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	r.log.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}
