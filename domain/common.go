package domain

import (
	"errors"
	"fmt"
)

const (
	RoomStatusDraft      = "draft"
	RoomStatusGenerating = "generating"
	RoomStatusVoting     = "voting"
	RoomStatusSelected   = "selected"

	SourceText   = "text"
	SourceSpeech = "speech"
	SourceImage  = "image"
)

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotParticipant   = fmt.Errorf("%w: not a participant in this room", ErrUnauthorized)
	ErrNotOwner         = fmt.Errorf("%w: only the room owner can do this", ErrUnauthorized)
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid room state")
)
