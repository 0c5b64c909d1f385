package constraint

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/internal/utils/testdb"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/room"
)

func setup(t *testing.T) (ConstraintService, *gorm.DB, string) {
	t.Helper()

	db := testdb.New(t)
	hub := realtime.NewHub()
	rooms := room.NewRoomRepository(db)
	created, err := room.NewRoomService(rooms, hub, nil, "").
		CreateRoom(context.Background(), domain.CreateRoomRequest{Name: "Lunch", OwnerName: "Ana"}, "owner-1")
	require.NoError(t, err)

	return NewConstraintService(NewConstraintRepository(db), rooms, hub), db, created.ID
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUpdateConstraintsPatchesOnlySuppliedFields(t *testing.T) {
	service, _, roomID := setup(t)
	ctx := context.Background()

	allergies := []string{"peanuts", "  ", " shellfish "}
	res, err := service.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{
		Allergies:     &allergies,
		MealType:      strPtr("dinner"),
		TimeLimitMins: intPtr(45),
	}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"peanuts", "shellfish"}, res.Allergies)
	assert.Equal(t, []string{}, res.DietFilters)
	first := res.UpdatedAt

	diets := []string{"vegetarian"}
	res, err = service.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{DietFilters: &diets}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"peanuts", "shellfish"}, res.Allergies)
	assert.Equal(t, []string{"vegetarian"}, res.DietFilters)
	assert.Equal(t, "dinner", *res.MealType)
	assert.Equal(t, 45, *res.TimeLimitMins)
	assert.False(t, res.UpdatedAt.Before(first))

	stored, err := service.GetConstraints(ctx, roomID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, res.ID, stored.ID)
	assert.Equal(t, []string{"vegetarian"}, stored.DietFilters)
}

func TestUpdateConstraintsInsertsWhenMissing(t *testing.T) {
	service, db, roomID := setup(t)
	ctx := context.Background()
	require.NoError(t, db.Where("room_id = ?", roomID).Delete(&entities.RoomConstraint{}).Error)

	none, err := service.GetConstraints(ctx, roomID)
	require.NoError(t, err)
	assert.Nil(t, none)

	cuisines := []string{"thai"}
	res, err := service.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{CuisinePreferences: &cuisines}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"thai"}, res.CuisinePreferences)
	assert.Equal(t, []string{}, res.Allergies)
	assert.Nil(t, res.MealType)

	var count int64
	require.NoError(t, db.Model(&entities.RoomConstraint{}).Where("room_id = ?", roomID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateConstraintsAuthorization(t *testing.T) {
	service, _, roomID := setup(t)
	ctx := context.Background()

	_, err := service.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{}, "stranger")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = service.UpdateConstraints(ctx, "1b0e7c2e-3f5e-4a41-9d1e-111111111111", domain.UpdateConstraintsRequest{}, "owner-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.GetConstraints(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

// interleavingRepository runs before once, ahead of the first patch it sees.
type interleavingRepository struct {
	ConstraintRepository
	before func()
}

func (r *interleavingRepository) PatchConstraint(ctx context.Context, roomID uuid.UUID, fields map[string]interface{}) (*entities.RoomConstraint, error) {
	if r.before != nil {
		hook := r.before
		r.before = nil
		hook()
	}
	return r.ConstraintRepository.PatchConstraint(ctx, roomID, fields)
}

func TestUpdateConstraintsOverlappingPatchesKeepBothFields(t *testing.T) {
	service, db, roomID := setup(t)
	ctx := context.Background()

	rooms := room.NewRoomRepository(db)
	wrapped := &interleavingRepository{ConstraintRepository: NewConstraintRepository(db)}
	slow := NewConstraintService(wrapped, rooms, realtime.NewHub())

	allergies := []string{"peanuts"}
	wrapped.before = func() {
		_, err := service.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{Allergies: &allergies}, "owner-1")
		require.NoError(t, err)
	}

	diets := []string{"vegan"}
	res, err := slow.UpdateConstraints(ctx, roomID, domain.UpdateConstraintsRequest{DietFilters: &diets}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"peanuts"}, res.Allergies)
	assert.Equal(t, []string{"vegan"}, res.DietFilters)

	stored, err := service.GetConstraints(ctx, roomID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"peanuts"}, stored.Allergies)
	assert.Equal(t, []string{"vegan"}, stored.DietFilters)
}
