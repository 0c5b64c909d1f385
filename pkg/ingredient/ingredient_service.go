package ingredient

import (
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/internal/utils/storage"
	"kitchen-copilot/pkg/llm"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/room"
	"strings"
	"time"
)

type (
	IngredientService interface {
		AddIngredient(ctx context.Context, roomID string, req domain.AddIngredientRequest, userID string) (domain.AddIngredientResponse, error)
		AddIngredientsBatch(ctx context.Context, roomID string, req domain.AddIngredientsBatchRequest, userID string) (domain.AddIngredientsBatchResponse, error)
		RemoveIngredient(ctx context.Context, ingredientID string, userID string) error
		GetIngredients(ctx context.Context, roomID string) ([]domain.IngredientResponse, error)
		ScanIngredients(ctx context.Context, roomID string, req domain.ScanIngredientsRequest, userID string) (domain.ScanIngredientsResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		roomRepository       room.RoomRepository
		publisher            realtime.Publisher
		s3                   storage.AwsS3
		vision               llm.Generator
	}
)

func NewIngredientService(
	ingredientRepository IngredientRepository,
	roomRepository room.RoomRepository,
	publisher realtime.Publisher,
	s3 storage.AwsS3,
	vision llm.Generator,
) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		roomRepository:       roomRepository,
		publisher:            publisher,
		s3:                   s3,
		vision:               vision,
	}
}

// NormalizeName is the dedup key of an ingredient within a room.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func newIngredient(roomID uuid.UUID, participant *entities.Participant, req domain.AddIngredientRequest, addedAt time.Time) (*entities.Ingredient, error) {
	name := NormalizeName(req.Name)
	if name == "" {
		return nil, domain.ErrEmptyIngredient
	}

	return &entities.Ingredient{
		ID:           uuid.New(),
		RoomID:       roomID,
		UserID:       participant.UserID,
		UserName:     participant.UserName,
		Name:         name,
		Amount:       req.Amount,
		Unit:         req.Unit,
		RawText:      req.RawText,
		DetectedFrom: req.DetectedFrom,
		Confidence:   req.Confidence,
		AddedAt:      addedAt,
	}, nil
}

func (s *ingredientService) AddIngredient(ctx context.Context, roomID string, req domain.AddIngredientRequest, userID string) (domain.AddIngredientResponse, error) {
	r, participant, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.AddIngredientResponse{}, err
	}

	ingredient, err := newIngredient(r.ID, participant, req, time.Now())
	if err != nil {
		return domain.AddIngredientResponse{}, err
	}

	id, _, err := s.ingredientRepository.Upsert(ctx, ingredient)
	if err != nil {
		return domain.AddIngredientResponse{}, err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventIngredientsUpdated)
	return domain.AddIngredientResponse{ID: id.String()}, nil
}

func (s *ingredientService) AddIngredientsBatch(ctx context.Context, roomID string, req domain.AddIngredientsBatchRequest, userID string) (domain.AddIngredientsBatchResponse, error) {
	r, participant, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.AddIngredientsBatchResponse{}, err
	}

	ids, err := s.addBatch(ctx, r.ID, participant, req.Ingredients)
	if err != nil {
		return domain.AddIngredientsBatchResponse{}, err
	}
	return domain.AddIngredientsBatchResponse{IDs: ids}, nil
}

func (s *ingredientService) addBatch(ctx context.Context, roomID uuid.UUID, participant *entities.Participant, drafts []domain.AddIngredientRequest) ([]string, error) {
	now := time.Now()
	ingredients := make([]*entities.Ingredient, 0, len(drafts))
	for i, draft := range drafts {
		// Spread timestamps so listing keeps the submitted order.
		ingredient, err := newIngredient(roomID, participant, draft, now.Add(time.Duration(i)*time.Microsecond))
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	inserted, err := s.ingredientRepository.UpsertBatch(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	realtime.Notify(ctx, s.publisher, roomID.String(), realtime.EventIngredientsUpdated)

	ids := make([]string, 0, len(inserted))
	for _, id := range inserted {
		ids = append(ids, id.String())
	}
	return ids, nil
}

func (s *ingredientService) RemoveIngredient(ctx context.Context, ingredientID string, userID string) error {
	id, err := uuid.Parse(ingredientID)
	if err != nil {
		return domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if _, _, err := room.Authorize(ctx, s.roomRepository, ingredient.RoomID.String(), userID); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if err := s.ingredientRepository.DeleteIngredient(ctx, ingredient.ID); err != nil {
		return err
	}

	realtime.Notify(ctx, s.publisher, ingredient.RoomID.String(), realtime.EventIngredientsUpdated)
	return nil
}

func (s *ingredientService) GetIngredients(ctx context.Context, roomID string) ([]domain.IngredientResponse, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.ingredientRepository.GetIngredientsByRoom(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, domain.NewIngredientResponse(ingredient))
	}
	return result, nil
}

// discardScan removes the photo of a scan that produced no ingredients.
func (s *ingredientService) discardScan(roomID uuid.UUID, objectKey string) {
	if err := s.s3.DeleteFile(objectKey); err != nil {
		log.Errorw("failed to delete scan image", "room_id", roomID.String(), "key", objectKey, "error", err)
	}
}

func (s *ingredientService) ScanIngredients(ctx context.Context, roomID string, req domain.ScanIngredientsRequest, userID string) (domain.ScanIngredientsResponse, error) {
	r, participant, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.ScanIngredientsResponse{}, err
	}

	data, contentType, err := storage.ReadFile(req.Image, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.ScanIngredientsResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.ScanIngredientsResponse{}, err
	}

	fileName := fmt.Sprintf("scan-%s", uuid.New().String())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, fmt.Sprintf("rooms/%s/scans", r.ID.String()), storage.AllowImage...)
	if err != nil {
		return domain.ScanIngredientsResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)
	stored := false
	defer func() {
		if !stored {
			s.discardScan(r.ID, objectKey)
		}
	}()

	resp, err := s.vision.Generate(ctx, llm.Request{
		System:      scanSystemPrompt,
		User:        scanUserPrompt,
		Temperature: 0.2,
		JSON:        true,
		Image:       &llm.Image{MIMEType: contentType, Data: data},
	})
	if err != nil {
		log.Errorw("ingredient scan failed", "room_id", r.ID.String(), "error", err)
		return domain.ScanIngredientsResponse{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	detected, err := ParseDetectedIngredients(resp.Content)
	if err != nil {
		return domain.ScanIngredientsResponse{}, err
	}
	if len(detected) == 0 {
		return domain.ScanIngredientsResponse{}, domain.ErrNoIngredients
	}

	ids, err := s.addBatch(ctx, r.ID, participant, detected)
	if err != nil {
		return domain.ScanIngredientsResponse{}, err
	}

	stored = true
	log.Infow("ingredients scanned", "room_id", r.ID.String(), "detected", len(detected), "inserted", len(ids))
	return domain.ScanIngredientsResponse{
		ImageURL:    imageURL,
		Detected:    detected,
		InsertedIDs: ids,
	}, nil
}
