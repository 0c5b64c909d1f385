package constraint

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/room"
	"strings"
	"time"
)

type (
	ConstraintService interface {
		UpdateConstraints(ctx context.Context, roomID string, req domain.UpdateConstraintsRequest, userID string) (domain.ConstraintResponse, error)
		// GetConstraints returns nil when the room has no constraint record.
		GetConstraints(ctx context.Context, roomID string) (*domain.ConstraintResponse, error)
	}

	constraintService struct {
		constraintRepository ConstraintRepository
		roomRepository       room.RoomRepository
		publisher            realtime.Publisher
	}
)

func NewConstraintService(constraintRepository ConstraintRepository, roomRepository room.RoomRepository, publisher realtime.Publisher) ConstraintService {
	return &constraintService{
		constraintRepository: constraintRepository,
		roomRepository:       roomRepository,
		publisher:            publisher,
	}
}

func (s *constraintService) UpdateConstraints(ctx context.Context, roomID string, req domain.UpdateConstraintsRequest, userID string) (domain.ConstraintResponse, error) {
	r, _, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.ConstraintResponse{}, err
	}

	now := time.Now()
	fields := patchFields(req)
	fields["updated_at"] = now

	constraint, err := s.constraintRepository.PatchConstraint(ctx, r.ID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		constraint = &entities.RoomConstraint{
			ID:                 uuid.New(),
			RoomID:             r.ID,
			Allergies:          []string{},
			DietFilters:        []string{},
			CookingMethods:     []string{},
			CuisinePreferences: []string{},
		}
		applyPatch(constraint, req)
		constraint.UpdatedAt = now
		err = s.constraintRepository.CreateConstraint(ctx, constraint)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Created concurrently; patch the winner instead.
			constraint, err = s.constraintRepository.PatchConstraint(ctx, r.ID, fields)
		}
	}
	if err != nil {
		return domain.ConstraintResponse{}, err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventConstraintsUpdated)
	return domain.NewConstraintResponse(constraint), nil
}

func (s *constraintService) GetConstraints(ctx context.Context, roomID string) (*domain.ConstraintResponse, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return nil, err
	}

	constraint, err := s.constraintRepository.GetConstraintByRoom(ctx, r.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	res := domain.NewConstraintResponse(constraint)
	return &res, nil
}

// patchFields lists the columns supplied by req.
func patchFields(req domain.UpdateConstraintsRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Allergies != nil {
		fields["allergies"] = datatypes.JSONSlice[string](cleanList(*req.Allergies))
	}
	if req.DietFilters != nil {
		fields["diet_filters"] = datatypes.JSONSlice[string](cleanList(*req.DietFilters))
	}
	if req.MealType != nil {
		fields["meal_type"] = *req.MealType
	}
	if req.CookingMethods != nil {
		fields["cooking_methods"] = datatypes.JSONSlice[string](cleanList(*req.CookingMethods))
	}
	if req.TimeLimitMins != nil {
		fields["time_limit_mins"] = *req.TimeLimitMins
	}
	if req.CuisinePreferences != nil {
		fields["cuisine_preferences"] = datatypes.JSONSlice[string](cleanList(*req.CuisinePreferences))
	}
	return fields
}

func applyPatch(c *entities.RoomConstraint, req domain.UpdateConstraintsRequest) {
	if req.Allergies != nil {
		c.Allergies = cleanList(*req.Allergies)
	}
	if req.DietFilters != nil {
		c.DietFilters = cleanList(*req.DietFilters)
	}
	if req.MealType != nil {
		c.MealType = req.MealType
	}
	if req.CookingMethods != nil {
		c.CookingMethods = cleanList(*req.CookingMethods)
	}
	if req.TimeLimitMins != nil {
		c.TimeLimitMins = req.TimeLimitMins
	}
	if req.CuisinePreferences != nil {
		c.CuisinePreferences = cleanList(*req.CuisinePreferences)
	}
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
