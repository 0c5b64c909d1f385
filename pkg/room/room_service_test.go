package room

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/utils/testdb"
	"kitchen-copilot/pkg/realtime"
)

type recordingPublisher struct {
	events []realtime.Event
}

func (p *recordingPublisher) Publish(_ context.Context, roomID string, kind string) error {
	p.events = append(p.events, realtime.Event{RoomID: roomID, Kind: kind})
	return nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(to string, subject string, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type RoomServiceSuite struct {
	suite.Suite
	ctx       context.Context
	repo      RoomRepository
	publisher *recordingPublisher
	mailer    *recordingMailer
	service   RoomService
}

func (s *RoomServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewRoomRepository(testdb.New(s.T()))
	s.publisher = &recordingPublisher{}
	s.mailer = &recordingMailer{}
	s.service = NewRoomService(s.repo, s.publisher, s.mailer, "http://localhost:3000/")
}

func (s *RoomServiceSuite) createRoom() domain.RoomResponse {
	room, err := s.service.CreateRoom(s.ctx, domain.CreateRoomRequest{Name: " Friday dinner ", OwnerName: "Ana"}, "owner-1")
	s.Require().NoError(err)
	return room
}

func (s *RoomServiceSuite) TestCreateRoomSeedsOwnerAndConstraints() {
	room := s.createRoom()

	s.Equal("Friday dinner", room.Name)
	s.Equal("owner-1", room.OwnerID)
	s.Equal(domain.RoomStatusDraft, room.Status)

	detail, err := s.service.GetRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Require().Len(detail.Participants, 1)
	s.Equal("owner-1", detail.Participants[0].UserID)
	s.Require().NotNil(detail.Constraints)
	s.Empty(detail.Constraints.Allergies)
	s.Empty(detail.Ingredients)
	s.Empty(detail.Recipes)
}

func (s *RoomServiceSuite) TestCreateRoomRequiresIdentity() {
	_, err := s.service.CreateRoom(s.ctx, domain.CreateRoomRequest{Name: "x", OwnerName: "y"}, "")
	s.ErrorIs(err, domain.ErrNotAuthenticated)
}

func (s *RoomServiceSuite) TestJoinRoomIsIdempotent() {
	room := s.createRoom()

	first, err := s.service.JoinRoom(s.ctx, room.ID, domain.JoinRoomRequest{UserName: "Ben"}, "user-2")
	s.Require().NoError(err)
	second, err := s.service.JoinRoom(s.ctx, room.ID, domain.JoinRoomRequest{UserName: "Ben again"}, "user-2")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("Ben", second.UserName)

	participants, err := s.service.GetParticipants(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Len(participants, 2)
	s.Len(s.publisher.events, 1)
	s.Equal(realtime.EventParticipantsUpdated, s.publisher.events[0].Kind)
}

func (s *RoomServiceSuite) TestJoinMissingRoom() {
	_, err := s.service.JoinRoom(s.ctx, "1b0e7c2e-3f5e-4a41-9d1e-111111111111", domain.JoinRoomRequest{UserName: "Ben"}, "user-2")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.service.JoinRoom(s.ctx, "not-a-uuid", domain.JoinRoomRequest{UserName: "Ben"}, "user-2")
	s.ErrorIs(err, domain.ErrRoomNotFound)
}

func (s *RoomServiceSuite) TestGetRoomNotFound() {
	_, err := s.service.GetRoom(s.ctx, "1b0e7c2e-3f5e-4a41-9d1e-111111111111")
	s.ErrorIs(err, domain.ErrRoomNotFound)
}

func (s *RoomServiceSuite) TestAuthorize() {
	room := s.createRoom()

	_, _, err := Authorize(s.ctx, s.repo, room.ID, "")
	s.ErrorIs(err, domain.ErrNotAuthenticated)

	_, _, err = Authorize(s.ctx, s.repo, room.ID, "stranger")
	s.ErrorIs(err, domain.ErrUnauthorized)

	found, participant, err := Authorize(s.ctx, s.repo, room.ID, "owner-1")
	s.Require().NoError(err)
	s.Equal(room.ID, found.ID.String())
	s.Equal("Ana", participant.UserName)
}

func (s *RoomServiceSuite) TestInviteByEmail() {
	room := s.createRoom()

	err := s.service.InviteByEmail(s.ctx, room.ID, domain.InviteRequest{Email: "friend@example.com"}, "stranger")
	s.ErrorIs(err, domain.ErrNotParticipant)
	s.Empty(s.mailer.sent)

	err = s.service.InviteByEmail(s.ctx, room.ID, domain.InviteRequest{Email: "friend@example.com"}, "owner-1")
	s.Require().NoError(err)
	s.Require().Len(s.mailer.sent, 1)
	s.Equal("friend@example.com", s.mailer.sent[0].to)
	s.Contains(s.mailer.sent[0].body, "http://localhost:3000/room/"+room.ID)
}

func (s *RoomServiceSuite) TestTransitionStatusIsConditional() {
	room := s.createRoom()
	id := s.mustParse(room.ID)

	ok, err := s.repo.TransitionStatus(s.ctx, id, []string{domain.RoomStatusDraft, domain.RoomStatusVoting}, domain.RoomStatusGenerating)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repo.TransitionStatus(s.ctx, id, []string{domain.RoomStatusDraft, domain.RoomStatusVoting}, domain.RoomStatusGenerating)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RoomServiceSuite) mustParse(id string) uuid.UUID {
	found, err := FindRoom(s.ctx, s.repo, id)
	s.Require().NoError(err)
	return found.ID
}

func TestRoomService(t *testing.T) {
	suite.Run(t, new(RoomServiceSuite))
}
