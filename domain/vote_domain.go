package domain

import (
	"kitchen-copilot/entities"
	"time"
)

const (
	VoteAdded   = "added"
	VoteRemoved = "removed"
)

var (
	MessageSuccessVote           = "vote recorded successfully"
	MessageSuccessGetVotes       = "success get votes"
	MessageSuccessGetLeaderboard = "success get leaderboard"

	MessageFailedVote           = "failed to record vote"
	MessageFailedGetVotes       = "failed to get votes"
	MessageFailedGetLeaderboard = "failed to get leaderboard"
)

type (
	VoteRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	VoteResult struct {
		Action string `json:"action"` // added or removed
	}

	VoteResponse struct {
		ID       string    `json:"id"`
		RoomID   string    `json:"room_id"`
		RecipeID string    `json:"recipe_id"`
		UserID   string    `json:"user_id"`
		UserName string    `json:"user_name"`
		VotedAt  time.Time `json:"voted_at"`
	}

	RoomVotesResponse struct {
		Votes      []VoteResponse `json:"votes"`
		VoteCounts map[string]int `json:"vote_counts"`
	}

	LeaderboardEntry struct {
		RecipeResponse
		VoteCount int `json:"vote_count"`
	}
)

func NewVoteResponse(v *entities.Vote) VoteResponse {
	return VoteResponse{
		ID:       v.ID.String(),
		RoomID:   v.RoomID.String(),
		RecipeID: v.RecipeID.String(),
		UserID:   v.UserID,
		UserName: v.UserName,
		VotedAt:  v.VotedAt,
	}
}
