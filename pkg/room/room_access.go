package room

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
)

// Authorize resolves roomID and checks that userID is enrolled in it. Every
// room-scoped mutation goes through here before touching its own tables.
func Authorize(ctx context.Context, repo RoomRepository, roomID string, userID string) (*entities.Room, *entities.Participant, error) {
	if userID == "" {
		return nil, nil, domain.ErrNotAuthenticated
	}

	room, err := FindRoom(ctx, repo, roomID)
	if err != nil {
		return nil, nil, err
	}

	participant, err := repo.GetParticipant(ctx, room.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotParticipant
		}
		return nil, nil, err
	}

	return room, participant, nil
}

// FindRoom parses roomID and loads the room, mapping a missing row to
// domain.ErrRoomNotFound.
func FindRoom(ctx context.Context, repo RoomRepository, roomID string) (*entities.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	room, err := repo.GetRoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}
