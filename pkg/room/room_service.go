package room

import (
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/internal/utils/mailing"
	"kitchen-copilot/pkg/realtime"
	"strings"
	"time"
)

type (
	RoomService interface {
		CreateRoom(ctx context.Context, req domain.CreateRoomRequest, userID string) (domain.RoomResponse, error)
		JoinRoom(ctx context.Context, roomID string, req domain.JoinRoomRequest, userID string) (domain.ParticipantResponse, error)
		GetRoom(ctx context.Context, roomID string) (domain.RoomDetailResponse, error)
		GetRoomSummary(ctx context.Context, roomID string) (domain.RoomResponse, error)
		GetParticipants(ctx context.Context, roomID string) ([]domain.ParticipantResponse, error)
		InviteByEmail(ctx context.Context, roomID string, req domain.InviteRequest, userID string) error
	}

	roomService struct {
		roomRepository RoomRepository
		publisher      realtime.Publisher
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewRoomService(roomRepository RoomRepository, publisher realtime.Publisher, mailer mailing.Mailer, appURL string) RoomService {
	return &roomService{
		roomRepository: roomRepository,
		publisher:      publisher,
		mailer:         mailer,
		appURL:         strings.TrimRight(appURL, "/"),
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req domain.CreateRoomRequest, userID string) (domain.RoomResponse, error) {
	if userID == "" {
		return domain.RoomResponse{}, domain.ErrNotAuthenticated
	}

	now := time.Now()
	room := &entities.Room{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		OwnerID:   userID,
		OwnerName: strings.TrimSpace(req.OwnerName),
		Status:    domain.RoomStatusDraft,
	}
	owner := &entities.Participant{
		ID:       uuid.New(),
		UserID:   userID,
		UserName: room.OwnerName,
		JoinedAt: now,
	}
	constraint := &entities.RoomConstraint{
		ID:                 uuid.New(),
		Allergies:          []string{},
		DietFilters:        []string{},
		CookingMethods:     []string{},
		CuisinePreferences: []string{},
		UpdatedAt:          now,
	}

	if err := s.roomRepository.CreateRoom(ctx, room, owner, constraint); err != nil {
		return domain.RoomResponse{}, err
	}

	log.Infow("room created", "room_id", room.ID.String(), "owner_id", userID)
	return domain.NewRoomResponse(room), nil
}

func (s *roomService) JoinRoom(ctx context.Context, roomID string, req domain.JoinRoomRequest, userID string) (domain.ParticipantResponse, error) {
	if userID == "" {
		return domain.ParticipantResponse{}, domain.ErrNotAuthenticated
	}

	room, err := FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return domain.ParticipantResponse{}, err
	}

	existing, err := s.roomRepository.GetParticipant(ctx, room.ID, userID)
	if err == nil {
		return domain.NewParticipantResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ParticipantResponse{}, err
	}

	participant := &entities.Participant{
		ID:       uuid.New(),
		RoomID:   room.ID,
		UserID:   userID,
		UserName: strings.TrimSpace(req.UserName),
		JoinedAt: time.Now(),
	}
	if err := s.roomRepository.AddParticipant(ctx, participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Joined concurrently from another request.
			existing, err := s.roomRepository.GetParticipant(ctx, room.ID, userID)
			if err != nil {
				return domain.ParticipantResponse{}, err
			}
			return domain.NewParticipantResponse(existing), nil
		}
		return domain.ParticipantResponse{}, err
	}

	realtime.Notify(ctx, s.publisher, room.ID.String(), realtime.EventParticipantsUpdated)
	return domain.NewParticipantResponse(participant), nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (domain.RoomDetailResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return domain.RoomDetailResponse{}, domain.ErrRoomNotFound
	}

	room, err := s.roomRepository.GetRoomDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoomDetailResponse{}, domain.ErrRoomNotFound
		}
		return domain.RoomDetailResponse{}, err
	}

	return domain.NewRoomDetailResponse(room), nil
}

func (s *roomService) GetRoomSummary(ctx context.Context, roomID string) (domain.RoomResponse, error) {
	room, err := FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return domain.RoomResponse{}, err
	}
	return domain.NewRoomResponse(room), nil
}

func (s *roomService) GetParticipants(ctx context.Context, roomID string) ([]domain.ParticipantResponse, error) {
	room, err := FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return nil, err
	}

	participants, err := s.roomRepository.GetParticipants(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, domain.NewParticipantResponse(p))
	}
	return result, nil
}

func (s *roomService) InviteByEmail(ctx context.Context, roomID string, req domain.InviteRequest, userID string) error {
	room, participant, err := Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/room/%s", s.appURL, room.ID.String())
	subject := fmt.Sprintf("%s invited you to plan \"%s\"", participant.UserName, room.Name)
	body := mailing.InvitationBody(participant.UserName, room.Name, link)

	if err := s.mailer.Send(req.Email, subject, body); err != nil {
		log.Errorw("failed to send room invitation", "room_id", room.ID.String(), "error", err)
		return err
	}
	return nil
}
