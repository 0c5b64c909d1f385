package vote

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/recipe"
	"kitchen-copilot/pkg/room"
	"sort"
	"time"
)

type (
	VoteService interface {
		Vote(ctx context.Context, roomID string, req domain.VoteRequest, userID string) (domain.VoteResult, error)
		GetRecipeVotes(ctx context.Context, recipeID string) ([]domain.VoteResponse, error)
		GetRoomVotes(ctx context.Context, roomID string) (domain.RoomVotesResponse, error)
		GetLeaderboard(ctx context.Context, roomID string) ([]domain.LeaderboardEntry, error)
	}

	voteService struct {
		voteRepository   VoteRepository
		roomRepository   room.RoomRepository
		recipeRepository recipe.RecipeRepository
		publisher        realtime.Publisher
	}
)

func NewVoteService(voteRepository VoteRepository, roomRepository room.RoomRepository, recipeRepository recipe.RecipeRepository, publisher realtime.Publisher) VoteService {
	return &voteService{
		voteRepository:   voteRepository,
		roomRepository:   roomRepository,
		recipeRepository: recipeRepository,
		publisher:        publisher,
	}
}

func (s *voteService) Vote(ctx context.Context, roomID string, req domain.VoteRequest, userID string) (domain.VoteResult, error) {
	if userID == "" {
		return domain.VoteResult{}, domain.ErrNotAuthenticated
	}

	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if r.Status != domain.RoomStatusVoting {
		return domain.VoteResult{}, domain.ErrInvalidState
	}

	target, err := s.findRecipe(ctx, req.RecipeID)
	if err != nil {
		return domain.VoteResult{}, err
	}
	if target.RoomID != r.ID {
		return domain.VoteResult{}, domain.ErrRecipeNotFound
	}

	_, participant, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.VoteResult{}, err
	}

	added, err := s.voteRepository.ToggleVote(ctx, &entities.Vote{
		ID:       uuid.New(),
		RoomID:   r.ID,
		RecipeID: target.ID,
		UserID:   participant.UserID,
		UserName: participant.UserName,
		VotedAt:  time.Now(),
	})
	if err != nil {
		return domain.VoteResult{}, err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventVotesUpdated)
	if added {
		return domain.VoteResult{Action: domain.VoteAdded}, nil
	}
	return domain.VoteResult{Action: domain.VoteRemoved}, nil
}

func (s *voteService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	found, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return found, nil
}

func (s *voteService) GetRecipeVotes(ctx context.Context, recipeID string) ([]domain.VoteResponse, error) {
	target, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepository.GetVotesByRecipe(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.VoteResponse, 0, len(votes))
	for _, v := range votes {
		result = append(result, domain.NewVoteResponse(v))
	}
	return result, nil
}

func (s *voteService) GetRoomVotes(ctx context.Context, roomID string) (domain.RoomVotesResponse, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return domain.RoomVotesResponse{}, err
	}

	votes, err := s.voteRepository.GetVotesByRoom(ctx, r.ID)
	if err != nil {
		return domain.RoomVotesResponse{}, err
	}

	res := domain.RoomVotesResponse{
		Votes:      make([]domain.VoteResponse, 0, len(votes)),
		VoteCounts: make(map[string]int),
	}
	for _, v := range votes {
		res.Votes = append(res.Votes, domain.NewVoteResponse(v))
		res.VoteCounts[v.RecipeID.String()]++
	}
	return res, nil
}

func (s *voteService) GetLeaderboard(ctx context.Context, roomID string) ([]domain.LeaderboardEntry, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepository.GetRecipesByRoom(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.voteRepository.GetVotesByRoom(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(recipes))
	for _, v := range votes {
		counts[v.RecipeID]++
	}

	board := make([]domain.LeaderboardEntry, 0, len(recipes))
	for _, rec := range recipes {
		board = append(board, domain.LeaderboardEntry{
			RecipeResponse: domain.NewRecipeResponse(rec),
			VoteCount:      counts[rec.ID],
		})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].VoteCount > board[j].VoteCount
	})
	return board, nil
}
