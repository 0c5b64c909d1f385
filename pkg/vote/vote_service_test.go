package vote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/utils/testdb"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/recipe"
	"kitchen-copilot/pkg/room"
)

type VoteServiceSuite struct {
	suite.Suite
	ctx       context.Context
	roomID    string
	recipeIDs []string
	rooms     room.RoomService
	recipes   recipe.RecipeService
	service   VoteService
}

func (s *VoteServiceSuite) SetupTest() {
	s.ctx = context.Background()
	db := testdb.New(s.T())
	hub := realtime.NewHub()

	roomRepo := room.NewRoomRepository(db)
	recipeRepo := recipe.NewRecipeRepository(db)
	s.rooms = room.NewRoomService(roomRepo, hub, nil, "")
	s.recipes = recipe.NewRecipeService(recipeRepo, roomRepo, nil, nil, nil, hub)
	s.service = NewVoteService(NewVoteRepository(db), roomRepo, recipeRepo, hub)

	created, err := s.rooms.CreateRoom(s.ctx, domain.CreateRoomRequest{Name: "Tacos", OwnerName: "Ana"}, "owner-1")
	s.Require().NoError(err)
	s.roomID = created.ID

	_, err = s.rooms.JoinRoom(s.ctx, s.roomID, domain.JoinRoomRequest{UserName: "Ben"}, "user-2")
	s.Require().NoError(err)

	s.recipeIDs = nil
	for _, title := range []string{"Al pastor", "Carnitas", "Veggie"} {
		id, err := s.recipes.CreateRecipe(s.ctx, s.roomID, recipe.Candidate{Title: title, Steps: []string{"Cook"}}, nil)
		s.Require().NoError(err)
		s.recipeIDs = append(s.recipeIDs, id)
	}
	s.Require().NoError(s.recipes.UpdateRoomStatus(s.ctx, s.roomID, domain.RoomStatusVoting))
}

func (s *VoteServiceSuite) vote(recipeID string, userID string) domain.VoteResult {
	res, err := s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: recipeID}, userID)
	s.Require().NoError(err)
	return res
}

func (s *VoteServiceSuite) TestVoteTwiceIsZeroVotes() {
	s.Equal(domain.VoteAdded, s.vote(s.recipeIDs[0], "user-2").Action)
	s.Equal(domain.VoteRemoved, s.vote(s.recipeIDs[0], "user-2").Action)

	votes, err := s.service.GetRecipeVotes(s.ctx, s.recipeIDs[0])
	s.Require().NoError(err)
	s.Empty(votes)

	tally, err := s.service.GetRoomVotes(s.ctx, s.roomID)
	s.Require().NoError(err)
	s.Empty(tally.Votes)
	s.Equal(0, tally.VoteCounts[s.recipeIDs[0]])
}

func (s *VoteServiceSuite) TestRoomTally() {
	s.vote(s.recipeIDs[1], "owner-1")
	s.vote(s.recipeIDs[1], "user-2")
	s.vote(s.recipeIDs[2], "user-2")

	tally, err := s.service.GetRoomVotes(s.ctx, s.roomID)
	s.Require().NoError(err)
	s.Len(tally.Votes, 3)
	s.Equal(map[string]int{s.recipeIDs[1]: 2, s.recipeIDs[2]: 1}, tally.VoteCounts)

	votes, err := s.service.GetRecipeVotes(s.ctx, s.recipeIDs[1])
	s.Require().NoError(err)
	s.Len(votes, 2)
	s.Equal("Ana", votes[0].UserName)
}

func (s *VoteServiceSuite) TestLeaderboardIncludesZeroCountsInStableOrder() {
	s.vote(s.recipeIDs[2], "owner-1")
	s.vote(s.recipeIDs[2], "user-2")
	s.vote(s.recipeIDs[1], "user-2")

	board, err := s.service.GetLeaderboard(s.ctx, s.roomID)
	s.Require().NoError(err)
	s.Require().Len(board, 3)
	s.Equal([]string{"Veggie", "Carnitas", "Al pastor"}, []string{board[0].Title, board[1].Title, board[2].Title})
	s.Equal([]int{2, 1, 0}, []int{board[0].VoteCount, board[1].VoteCount, board[2].VoteCount})
}

func (s *VoteServiceSuite) TestLeaderboardTiesKeepCreationOrder() {
	board, err := s.service.GetLeaderboard(s.ctx, s.roomID)
	s.Require().NoError(err)
	s.Equal([]string{"Al pastor", "Carnitas", "Veggie"}, []string{board[0].Title, board[1].Title, board[2].Title})
}

func (s *VoteServiceSuite) TestVoteRequiresVotingStatus() {
	s.Require().NoError(s.recipes.UpdateRoomStatus(s.ctx, s.roomID, domain.RoomStatusDraft))

	_, err := s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: s.recipeIDs[0]}, "user-2")
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *VoteServiceSuite) TestVoteValidation() {
	_, err := s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: s.recipeIDs[0]}, "stranger")
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: s.recipeIDs[0]}, "")
	s.ErrorIs(err, domain.ErrNotAuthenticated)

	_, err = s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: uuid.NewString()}, "user-2")
	s.ErrorIs(err, domain.ErrRecipeNotFound)

	_, err = s.service.Vote(s.ctx, uuid.NewString(), domain.VoteRequest{RecipeID: s.recipeIDs[0]}, "user-2")
	s.ErrorIs(err, domain.ErrRoomNotFound)
}

func (s *VoteServiceSuite) TestVoteOnRecipeFromAnotherRoom() {
	other, err := s.rooms.CreateRoom(s.ctx, domain.CreateRoomRequest{Name: "Other", OwnerName: "Ana"}, "owner-1")
	s.Require().NoError(err)
	foreign, err := s.recipes.CreateRecipe(s.ctx, other.ID, recipe.Candidate{Title: "Soup", Steps: []string{"Boil"}}, nil)
	s.Require().NoError(err)

	_, err = s.service.Vote(s.ctx, s.roomID, domain.VoteRequest{RecipeID: foreign}, "user-2")
	s.ErrorIs(err, domain.ErrRecipeNotFound)
}

func TestVoteService(t *testing.T) {
	suite.Run(t, new(VoteServiceSuite))
}
