package usecase

import (
	"context"
	"fmt"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/internal/dto/request"
	"onnrides/internal/dto/response"
	"onnrides/pkg/cache"
	"onnrides/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const vehicleCacheTTL = 5 * time.Minute

type VehicleService interface {
	// Public
	GetAvailableVehicles(ctx context.Context, vehicleType, location string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VehicleResponse], error)
	GetVehicleByID(ctx context.Context, id string) (*response.VehicleResponse, error)

	// Admin
	CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, id string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	UpdateVehicleStatus(ctx context.Context, id string, status string) error
	DeleteVehicle(ctx context.Context, id string) error
}

type vehicleService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewVehicleService(repo *repository.Repository, c *cache.Cache, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "vehicle")),
	}
}

func vehicleCacheKey(id string) string {
	return "vehicle:" + id
}

func (s *vehicleService) GetAvailableVehicles(ctx context.Context, vehicleType, location string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VehicleResponse], error) {
	vehicles, err := s.repo.Vehicle.FindAvailable(ctx, vehicleType, location, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get available vehicles", zap.Error(err))
		return nil, fmt.Errorf("get available vehicles: %w", err)
	}

	total, err := s.repo.Vehicle.CountAvailable(ctx, vehicleType, location)
	if err != nil {
		s.log.Error("Failed to count available vehicles", zap.Error(err))
		return nil, fmt.Errorf("count available vehicles: %w", err)
	}

	items := make([]response.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = response.VehicleToResponse(v)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, id string) (*response.VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	var cached response.VehicleResponse
	if err := s.cache.GetJSON(ctx, vehicleCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}

	resp := response.VehicleToResponse(vehicle)
	s.cache.SetJSON(ctx, vehicleCacheKey(id), resp, vehicleCacheTTL)
	return &resp, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vehicle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	minHours := req.MinBookingHours
	if minHours < 1 {
		minHours = 1
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Type:            entity.VehicleType(req.Type),
		Location:        req.Location,
		Quantity:        req.Quantity,
		PricePerHour:    req.PricePerHour,
		Price7Days:      req.Price7Days,
		Price15Days:     req.Price15Days,
		Price30Days:     req.Price30Days,
		MinBookingHours: minHours,
		IsAvailable:     true,
		Status:          entity.VehicleStatusActive,
		Description:     req.Description,
		Images:          req.Images,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		s.log.Error("Failed to create vehicle", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("name", vehicle.Name),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update vehicle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}

	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Location != nil {
		vehicle.Location = *req.Location
	}
	if req.Quantity != nil {
		vehicle.Quantity = *req.Quantity
	}
	if req.PricePerHour != nil {
		vehicle.PricePerHour = *req.PricePerHour
	}
	if req.Price7Days != nil {
		vehicle.Price7Days = req.Price7Days
	}
	if req.Price15Days != nil {
		vehicle.Price15Days = req.Price15Days
	}
	if req.Price30Days != nil {
		vehicle.Price30Days = req.Price30Days
	}
	if req.MinBookingHours != nil {
		vehicle.MinBookingHours = *req.MinBookingHours
	}
	if req.IsAvailable != nil {
		vehicle.IsAvailable = *req.IsAvailable
	}
	if req.Status != nil {
		vehicle.Status = entity.VehicleStatus(*req.Status)
	}
	if req.Description != nil {
		vehicle.Description = req.Description
	}
	if req.Images != nil {
		vehicle.Images = req.Images
	}
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		s.log.Error("Failed to update vehicle", zap.Error(err), zap.String("vehicle_id", id))
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}

	s.cache.Delete(ctx, vehicleCacheKey(id))
	s.log.Info("Vehicle updated", zap.String("vehicle_id", id))

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) UpdateVehicleStatus(ctx context.Context, id string, status string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	switch entity.VehicleStatus(status) {
	case entity.VehicleStatusActive, entity.VehicleStatusMaintenance, entity.VehicleStatusRetired:
	default:
		return fmt.Errorf("invalid status %s: must be active, maintenance or retired", status)
	}

	if err := s.repo.Vehicle.UpdateStatus(ctx, vehicleID, entity.VehicleStatus(status)); err != nil {
		s.log.Error("Failed to update vehicle status", zap.Error(err), zap.String("vehicle_id", id))
		return fmt.Errorf("update vehicle %s status: %w", id, err)
	}

	s.cache.Delete(ctx, vehicleCacheKey(id))
	s.log.Info("Vehicle status updated",
		zap.String("vehicle_id", id),
		zap.String("status", status),
	)
	return nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID format %s: %w", id, err)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return fmt.Errorf("vehicle %s not found", id)
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicleID); err != nil {
		s.log.Error("Failed to delete vehicle", zap.Error(err), zap.String("vehicle_id", id))
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}

	s.cache.Delete(ctx, vehicleCacheKey(id))
	s.log.Info("Vehicle deleted", zap.String("vehicle_id", id))
	return nil
}
