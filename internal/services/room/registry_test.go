package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/9910597111/BlindSketch-Game/internal/broadcast"
	"github.com/9910597111/BlindSketch-Game/internal/dependencies/mocks"
	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/services/scoring"
	"github.com/9910597111/BlindSketch-Game/internal/services/words"
	"github.com/9910597111/BlindSketch-Game/internal/storage/memory"
	"github.com/9910597111/BlindSketch-Game/internal/testutil"
)

type RegistryTestSuite struct {
	suite.Suite

	ctx      context.Context
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	store    *memory.Storage
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.store = memory.New()

	wordSource := words.New(s.store, s.random)
	s.Require().NoError(wordSource.LoadWords([]string{"apple", "banana", "cherry"}))

	s.registry = NewRegistry(
		broadcast.NewRecorder(),
		s.store,
		wordSource,
		scoring.New(),
		s.clock,
		s.random,
		testutil.NopLogger(),
		time.Hour,
	)
}

func (s *RegistryTestSuite) TestCreateRoomMintsCodeAndMirrors() {
	s.random.QueueString("ABCD2345")

	coord, creatorID, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)
	s.NotEmpty(creatorID)

	room := coord.Room()
	s.Equal(model.RoomID("ABCD2345"), room.ID)
	s.Equal(creatorID, room.CreatorID)
	s.Equal(model.RoomStatusWaiting, room.Status)

	stored, err := s.store.GetRoom(s.ctx, "ABCD2345")
	s.Require().NoError(err)
	s.Equal(room.ID, stored.ID)

	got, err := s.registry.Get("ABCD2345")
	s.Require().NoError(err)
	s.Same(coord, got)
}

func (s *RegistryTestSuite) TestCreateRoomRetriesTakenCode() {
	s.random.QueueString("SAMECODE", "SAMECODE", "OTHER234")

	first, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)
	second, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)

	s.Equal(model.RoomID("SAMECODE"), first.Room().ID)
	s.Equal(model.RoomID("OTHER234"), second.Room().ID)
	s.Equal(2, s.registry.Count())
}

func (s *RegistryTestSuite) TestCreateRoomValidatesConfig() {
	config := model.DefaultRoomConfig()
	config.MaxPlayers = 1

	_, _, err := s.registry.CreateRoom(s.ctx, config)
	s.ErrorIs(err, model.ErrInvalidRoomConfig)
	s.Equal(0, s.registry.Count())
}

func (s *RegistryTestSuite) TestGetUnknownRoom() {
	_, err := s.registry.Get("NOPE")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistryTestSuite) TestRandomPublicRoomSkipsPrivateAndFull() {
	s.random.QueueString("PUBLIC23", "PRIVATE2", "FULLROOM")

	public, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)

	private := model.DefaultRoomConfig()
	private.IsPrivate = true
	_, _, err = s.registry.CreateRoom(s.ctx, private)
	s.Require().NoError(err)

	small := model.DefaultRoomConfig()
	small.MaxPlayers = 2
	full, _, err := s.registry.CreateRoom(s.ctx, small)
	s.Require().NoError(err)
	_, err = full.Join(s.ctx, "p1", "alice")
	s.Require().NoError(err)
	_, err = full.Join(s.ctx, "p2", "bob")
	s.Require().NoError(err)

	picked, err := s.registry.RandomPublicRoom()
	s.Require().NoError(err)
	s.Same(public, picked)
}

func (s *RegistryTestSuite) TestRandomPublicRoomWhenNoneAvailable() {
	private := model.DefaultRoomConfig()
	private.IsPrivate = true
	s.random.QueueString("PRIVATE2")
	_, _, err := s.registry.CreateRoom(s.ctx, private)
	s.Require().NoError(err)

	_, err = s.registry.RandomPublicRoom()
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistryTestSuite) TestRemoveCleansUpStorage() {
	s.random.QueueString("ABCD2345")
	coord, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "p1", "alice")
	s.Require().NoError(err)

	s.registry.Remove(s.ctx, "ABCD2345")

	s.Equal(0, s.registry.Count())
	_, err = s.registry.Get("ABCD2345")
	s.ErrorIs(err, model.ErrRoomNotFound)
	_, err = s.store.GetRoom(s.ctx, "ABCD2345")
	s.ErrorIs(err, model.ErrRoomNotFound)
	_, err = s.store.GetPlayer(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RegistryTestSuite) TestSweepRetiresStaleRooms() {
	s.random.QueueString("STALE234", "ACTIVE23")

	_, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	active, _, err := s.registry.CreateRoom(s.ctx, model.DefaultRoomConfig())
	s.Require().NoError(err)
	_, err = active.Join(s.ctx, "p1", "alice")
	s.Require().NoError(err)

	// Only the long-empty room is past the one hour retention window.
	s.Equal(1, s.registry.Sweep(s.ctx))
	s.Equal(1, s.registry.Count())
	_, err = s.registry.Get("STALE234")
	s.ErrorIs(err, model.ErrRoomNotFound)
	_, err = s.registry.Get("ACTIVE23")
	s.NoError(err)
}
