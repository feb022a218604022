package room

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
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

type CoordinatorTestSuite struct {
	suite.Suite

	ctx      context.Context
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	recorder *broadcast.Recorder
	store    *memory.Storage
	words    *words.Service
	scoring  *scoring.Service
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.recorder = broadcast.NewRecorder()
	s.store = memory.New()
	s.words = words.New(s.store, s.random)
	s.scoring = scoring.New()

	// Exactly as many words as the choice count, so every turn offers the
	// same known set.
	s.Require().NoError(s.words.LoadWords([]string{"apple", "banana", "cherry"}))
}

func (s *CoordinatorTestSuite) newCoordinator(config model.RoomConfig, creatorID model.PlayerID) *Coordinator {
	room := model.Room{
		ID:        "TESTROOM",
		CreatorID: creatorID,
		Config:    config,
		Status:    model.RoomStatusWaiting,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	return NewCoordinator(room, s.recorder, s.store, s.words, s.scoring, s.clock, testutil.NopLogger())
}

func (s *CoordinatorTestSuite) testConfig() model.RoomConfig {
	return model.RoomConfig{
		MaxPlayers:      8,
		TotalRounds:     2,
		RoundDuration:   30,
		WordChoiceCount: 3,
		HintCount:       2,
	}
}

// startedGame returns a coordinator mid-game with alice drawing and bob and
// carol guessing.
func (s *CoordinatorTestSuite) startedGame() *Coordinator {
	coord := s.newCoordinator(s.testConfig(), "alice")

	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "carol", "carol")
	s.Require().NoError(err)

	s.Require().NoError(coord.StartGame(s.ctx, "alice"))
	s.recorder.Reset()
	return coord
}

func (s *CoordinatorTestSuite) drawerSequence() []model.PlayerID {
	var drawers []model.PlayerID
	for _, b := range s.recorder.BroadcastsOfType(model.EventNewTurn) {
		drawers = append(drawers, b.Event.Data.(model.NewTurnData).DrawerID)
	}
	return drawers
}

func (s *CoordinatorTestSuite) TestJoinAssignsJoinOrderAndAnnounces() {
	coord := s.newCoordinator(s.testConfig(), "alice")

	alice, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	bob, err := coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)

	s.Equal(0, alice.JoinOrder)
	s.Equal(1, bob.JoinOrder)

	roster := coord.Players()
	s.Require().Len(roster, 2)
	s.Equal(model.PlayerID("alice"), roster[0].ID)
	s.Equal(model.PlayerID("bob"), roster[1].ID)

	s.Len(s.recorder.BroadcastsOfType(model.EventPlayerJoined), 2)
	s.Len(s.recorder.BroadcastsOfType(model.EventSystemMessage), 2)
}

func (s *CoordinatorTestSuite) TestJoinRejectsInvalidUsername() {
	coord := s.newCoordinator(s.testConfig(), "alice")

	_, err := coord.Join(s.ctx, "p1", "x")
	s.ErrorIs(err, model.ErrInvalidUsername)

	_, err = coord.Join(s.ctx, "p2", "has spaces")
	s.ErrorIs(err, model.ErrInvalidUsername)
}

func (s *CoordinatorTestSuite) TestJoinRejectsFullRoom() {
	config := s.testConfig()
	config.MaxPlayers = 2
	coord := s.newCoordinator(config, "alice")

	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)

	_, err = coord.Join(s.ctx, "carol", "carol")
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *CoordinatorTestSuite) TestJoinRejectsFinishedGame() {
	config := s.testConfig()
	config.TotalRounds = 1
	coord := s.newCoordinator(config, "alice")

	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)
	s.Require().NoError(coord.StartGame(s.ctx, "alice"))

	// Nobody picks a word; each selection deadline advances the turn until
	// the single round is exhausted.
	s.clock.Advance(30 * time.Second)
	s.clock.Advance(30 * time.Second)
	s.Equal(model.RoomStatusFinished, coord.Room().Status)

	_, err = coord.Join(s.ctx, "carol", "carol")
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *CoordinatorTestSuite) TestStartGameRequiresTwoPlayers() {
	coord := s.newCoordinator(s.testConfig(), "alice")
	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)

	s.ErrorIs(coord.StartGame(s.ctx, "alice"), model.ErrInsufficientPlayers)
}

func (s *CoordinatorTestSuite) TestStartGameCreatorOnly() {
	coord := s.newCoordinator(s.testConfig(), "alice")
	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)

	s.ErrorIs(coord.StartGame(s.ctx, "bob"), model.ErrNotAuthorized)
	s.NoError(coord.StartGame(s.ctx, "alice"))
}

func (s *CoordinatorTestSuite) TestStartGameLegacyFallbackToEarliestJoiner() {
	coord := s.newCoordinator(s.testConfig(), "")
	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)

	s.ErrorIs(coord.StartGame(s.ctx, "bob"), model.ErrNotAuthorized)
	s.NoError(coord.StartGame(s.ctx, "alice"))
}

func (s *CoordinatorTestSuite) TestStartGameTwiceFails() {
	coord := s.startedGame()
	s.ErrorIs(coord.StartGame(s.ctx, "alice"), model.ErrAlreadyStarted)
}

func (s *CoordinatorTestSuite) TestStartGameDeliversPrivateChoices() {
	coord := s.newCoordinator(s.testConfig(), "alice")
	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)
	s.recorder.Reset()

	s.Require().NoError(coord.StartGame(s.ctx, "alice"))

	// Word choices go to the drawer alone, never room-wide.
	sent := s.recorder.SentTo("alice")
	s.Require().Len(sent, 1)
	s.Equal(model.EventWordChoices, sent[0].Type)
	s.ElementsMatch([]string{"apple", "banana", "cherry"}, sent[0].Data.(model.WordChoicesData).Words)
	s.Empty(s.recorder.SentTo("bob"))
	s.Empty(s.recorder.BroadcastsOfType(model.EventWordChoices))

	s.Len(s.recorder.BroadcastsOfType(model.EventNewTurn), 1)
	s.Len(s.recorder.BroadcastsOfType(model.EventGameStarted), 1)
}

func (s *CoordinatorTestSuite) TestSelectWordValidation() {
	coord := s.startedGame()

	// Not the drawer: expected race, silently ignored.
	s.NoError(coord.SelectWord(s.ctx, "bob", "apple"))
	s.Empty(s.recorder.BroadcastsOfType(model.EventWordSelected))

	// Drawer picking outside the offered set is a real error.
	s.ErrorIs(coord.SelectWord(s.ctx, "alice", "zebra"), model.ErrInvalidWordChoice)

	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	selected := s.recorder.BroadcastsOfType(model.EventWordSelected)
	s.Require().Len(selected, 1)
	data := selected[0].Event.Data.(model.WordSelectedData)
	s.Equal(5, data.WordLength)
	s.Equal([]string{"_", "_", "_", "_", "_"}, data.WordDisplay)
	s.Equal(30, data.TimeRemaining)

	// Picking again is ignored.
	s.NoError(coord.SelectWord(s.ctx, "alice", "banana"))
	s.Len(s.recorder.BroadcastsOfType(model.EventWordSelected), 1)
}

func (s *CoordinatorTestSuite) TestHintScheduleAndTimeout() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	// 30s round with 2 hints: reveals at 10s and 20s, timeout at 30s.
	s.clock.Advance(10 * time.Second)
	hints := s.recorder.BroadcastsOfType(model.EventHintRevealed)
	s.Require().Len(hints, 1)
	first := hints[0].Event.Data.(model.HintRevealedData)
	s.Equal([]int{0}, first.HintPositions)
	s.Equal(1, first.HintsRevealed)
	s.Equal([]string{"A", "_", "_", "_", "_"}, first.WordDisplay)

	s.clock.Advance(10 * time.Second)
	hints = s.recorder.BroadcastsOfType(model.EventHintRevealed)
	s.Require().Len(hints, 2)
	second := hints[1].Event.Data.(model.HintRevealedData)
	s.Equal([]int{0, 2}, second.HintPositions)
	s.Equal(2, second.HintsRevealed)
	s.Equal([]string{"A", "_", "P", "_", "_"}, second.WordDisplay)

	s.clock.Advance(10 * time.Second)
	timeouts := s.recorder.BroadcastsOfType(model.EventTurnTimeout)
	s.Require().Len(timeouts, 1)
	s.Equal("apple", timeouts[0].Event.Data.(model.TurnTimeoutData).Word)
	s.Len(s.recorder.BroadcastsOfType(model.EventHintRevealed), 2)

	// Grace period, then the next drawer takes over.
	s.Empty(s.recorder.BroadcastsOfType(model.EventNewTurn))
	s.clock.Advance(3 * time.Second)
	s.Equal([]model.PlayerID{"bob"}, s.drawerSequence())
}

func (s *CoordinatorTestSuite) TestCorrectGuessScoresAndResolves() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	// Normalization: surrounding space and case do not matter.
	s.False(coord.SubmitGuess(s.ctx, "bob", "apples"))
	s.True(coord.SubmitGuess(s.ctx, "bob", "  APPLE "))

	// The turn is resolved: later guesses lose, even exact ones.
	s.False(coord.SubmitGuess(s.ctx, "carol", "apple"))
	s.False(coord.SubmitGuess(s.ctx, "bob", "apple"))

	var bob, alice, carol model.Player
	for _, p := range coord.Players() {
		switch p.ID {
		case "bob":
			bob = p
		case "alice":
			alice = p
		case "carol":
			carol = p
		}
	}
	s.Equal(100, bob.Score)
	s.Equal(50, alice.Score)
	s.Equal(0, carol.Score)

	correct := s.recorder.BroadcastsOfType(model.EventCorrectGuess)
	s.Require().Len(correct, 1)
	data := correct[0].Event.Data.(model.CorrectGuessData)
	s.Equal(model.PlayerID("bob"), data.PlayerID)
	s.Equal("apple", data.Word)
	s.Equal(100, data.Points)

	// The cancelled round timer must not produce a timeout on top.
	s.clock.Advance(30 * time.Second)
	s.Empty(s.recorder.BroadcastsOfType(model.EventTurnTimeout))
	s.Len(s.recorder.BroadcastsOfType(model.EventCorrectGuess), 1)

	// The grace continuation handed the turn to bob.
	s.Equal([]model.PlayerID{"bob"}, s.drawerSequence())
}

func (s *CoordinatorTestSuite) TestTimeoutThenCorrectGuessIsIgnored() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	s.clock.Advance(30 * time.Second)
	s.Require().Len(s.recorder.BroadcastsOfType(model.EventTurnTimeout), 1)

	// The timeout won the latch; a straggling correct guess changes nothing.
	s.False(coord.SubmitGuess(s.ctx, "bob", "apple"))
	s.Empty(s.recorder.BroadcastsOfType(model.EventCorrectGuess))
	for _, p := range coord.Players() {
		s.Equal(0, p.Score)
	}
}

func (s *CoordinatorTestSuite) TestDrawerCannotGuess() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	s.False(coord.SubmitGuess(s.ctx, "alice", "apple"))
	s.Empty(s.recorder.BroadcastsOfType(model.EventCorrectGuess))
}

func (s *CoordinatorTestSuite) TestGuessBeforeWordSelectedIsIgnored() {
	coord := s.startedGame()

	s.False(coord.SubmitGuess(s.ctx, "bob", "apple"))
	s.Empty(s.recorder.BroadcastsOfType(model.EventCorrectGuess))
}

func (s *CoordinatorTestSuite) TestSelectionDeadlineAdvancesSilently() {
	s.startedGame()

	// The drawer never picks. No reveal and no grace: the turn just moves on.
	s.clock.Advance(30 * time.Second)
	s.Empty(s.recorder.BroadcastsOfType(model.EventTurnTimeout))
	s.Equal([]model.PlayerID{"bob"}, s.drawerSequence())
}

func (s *CoordinatorTestSuite) TestDrawerLeaveAdvancesImmediatelyWithoutReveal() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.recorder.Reset()

	s.Require().NoError(coord.Leave(s.ctx, "alice"))

	// Immediate handover, no grace delay and no timeout reveal.
	s.Equal([]model.PlayerID{"bob"}, s.drawerSequence())
	s.Empty(s.recorder.BroadcastsOfType(model.EventTurnTimeout))
	s.Len(s.recorder.BroadcastsOfType(model.EventPlayerLeft), 1)

	// The abandoned word must never reach the room.
	for _, b := range s.recorder.Broadcasts() {
		payload, err := json.Marshal(b.Event)
		s.Require().NoError(err)
		s.NotContains(strings.ToLower(string(payload)), "apple")
	}
}

func (s *CoordinatorTestSuite) TestGuesserLeaveDoesNotAdvanceTurn() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.recorder.Reset()

	s.Require().NoError(coord.Leave(s.ctx, "carol"))

	s.Empty(s.drawerSequence())
	s.Len(s.recorder.BroadcastsOfType(model.EventPlayerLeft), 1)

	// The turn is still live for the remaining guesser.
	s.True(coord.SubmitGuess(s.ctx, "bob", "apple"))
}

func (s *CoordinatorTestSuite) TestLeaveUnknownPlayer() {
	coord := s.startedGame()
	s.ErrorIs(coord.Leave(s.ctx, "mallory"), model.ErrNotInRoom)
}

func (s *CoordinatorTestSuite) TestRotationAcrossRoundsAndGameEnd() {
	config := s.testConfig()
	config.HintCount = 0
	coord := s.newCoordinator(config, "p0")

	for _, id := range []model.PlayerID{"p0", "p1", "p2"} {
		_, err := coord.Join(s.ctx, id, "user_"+string(id))
		s.Require().NoError(err)
	}
	s.Require().NoError(coord.StartGame(s.ctx, "p0"))

	// Let every selection deadline lapse: 2 rounds of 3 turns each.
	for i := 0; i < 6; i++ {
		s.clock.Advance(30 * time.Second)
	}

	s.Equal([]model.PlayerID{"p0", "p1", "p2", "p0", "p1", "p2"}, s.drawerSequence())

	completes := s.recorder.BroadcastsOfType(model.EventRoundComplete)
	s.Require().Len(completes, 1)
	s.Equal(1, completes[0].Event.Data.(model.RoundCompleteData).CompletedRound)
	s.Equal(2, completes[0].Event.Data.(model.RoundCompleteData).NextRound)

	ended := s.recorder.BroadcastsOfType(model.EventGameEnded)
	s.Require().Len(ended, 1)
	s.Equal(model.RoomStatusFinished, coord.Room().Status)

	// No further timers once the game is over.
	s.Equal(0, s.clock.PendingTimers())
}

func (s *CoordinatorTestSuite) TestFinalStandingsSortedByScoreThenJoinOrder() {
	config := s.testConfig()
	config.TotalRounds = 1
	coord := s.newCoordinator(config, "alice")

	for _, id := range []model.PlayerID{"alice", "bob", "carol"} {
		_, err := coord.Join(s.ctx, id, string(id))
		s.Require().NoError(err)
	}
	s.Require().NoError(coord.StartGame(s.ctx, "alice"))

	// Turn 1: bob guesses alice's word (+100 bob, +50 alice).
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.True(coord.SubmitGuess(s.ctx, "bob", "apple"))
	s.clock.Advance(3 * time.Second)

	// Turns 2 and 3 lapse unplayed, ending the single round.
	s.clock.Advance(30 * time.Second)
	s.clock.Advance(30 * time.Second)

	ended := s.recorder.BroadcastsOfType(model.EventGameEnded)
	s.Require().Len(ended, 1)
	data := ended[0].Event.Data.(model.GameEndedData)
	s.Require().Len(data.FinalScores, 3)
	s.Equal(model.PlayerID("bob"), data.FinalScores[0].ID)
	s.Equal(model.PlayerID("alice"), data.FinalScores[1].ID)
	s.Equal(model.PlayerID("carol"), data.FinalScores[2].ID)
	s.Require().NotNil(data.Winner)
	s.Equal(model.PlayerID("bob"), data.Winner.ID)
}

func (s *CoordinatorTestSuite) TestUpdateDrawingRelaysExcludingDrawer() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.recorder.Reset()

	blob := []byte(`{"strokes":[[1,2],[3,4]]}`)
	coord.UpdateDrawing(s.ctx, "alice", blob)

	updates := s.recorder.BroadcastsOfType(model.EventDrawingUpdate)
	s.Require().Len(updates, 1)
	s.Equal([]model.PlayerID{"alice"}, updates[0].Exclude)
	s.JSONEq(string(blob), string(updates[0].Event.Data.(model.DrawingUpdateData).DrawingData))

	stored, err := s.store.GetDrawing(s.ctx, "TESTROOM")
	s.Require().NoError(err)
	s.JSONEq(string(blob), string(stored.Strokes))

	// Strokes from anyone but the drawer are dropped.
	coord.UpdateDrawing(s.ctx, "bob", blob)
	s.Len(s.recorder.BroadcastsOfType(model.EventDrawingUpdate), 1)
}

func (s *CoordinatorTestSuite) TestCorrectGuessRecordsSystemChat() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.True(coord.SubmitGuess(s.ctx, "bob", "apple"))

	msgs, err := s.store.GetChatMessages(s.ctx, "TESTROOM", 0)
	s.Require().NoError(err)
	s.Require().NotEmpty(msgs)
	last := msgs[len(msgs)-1]
	s.Equal("bob guessed the word!", last.Message)
	s.True(last.IsCorrectGuess)
	s.Empty(last.PlayerID)
}

func (s *CoordinatorTestSuite) TestRecordChatPersistsAndBroadcasts() {
	coord := s.startedGame()

	coord.RecordChat(s.ctx, "bob", "nice drawing")

	chats := s.recorder.BroadcastsOfType(model.EventChatMessage)
	s.Require().Len(chats, 1)
	msg := chats[0].Event.Data.(model.ChatMessageData).Message
	s.Equal("bob", msg.Username)
	s.Equal("nice drawing", msg.Message)

	stored, err := s.store.GetChatMessages(s.ctx, "TESTROOM", 0)
	s.Require().NoError(err)
	s.Require().NotEmpty(stored)
	s.Equal("nice drawing", stored[len(stored)-1].Message)

	// Unknown senders are dropped.
	coord.RecordChat(s.ctx, "mallory", "hi")
	s.Len(s.recorder.BroadcastsOfType(model.EventChatMessage), 1)
}

func (s *CoordinatorTestSuite) TestSnapshotOmitsSecretWord() {
	coord := s.startedGame()
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))

	snap := coord.Snapshot(s.ctx, "bob")
	s.Equal(model.PlayerID("bob"), snap.PlayerID)
	s.Require().NotNil(snap.Room)
	s.Empty(snap.Room.CurrentWord)
	s.Len(snap.Players, 3)
}

// gatedStore blocks SaveRoom until released, standing in for a stalled
// mirror backend.
type gatedStore struct {
	*memory.Storage
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) SaveRoom(ctx context.Context, room *model.Room) error {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.release
	return g.Storage.SaveRoom(ctx, room)
}

func (s *CoordinatorTestSuite) TestStalledMirrorDoesNotBlockRoom() {
	store := &gatedStore{
		Storage: s.store,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	room := model.Room{
		ID:        "TESTROOM",
		CreatorID: "alice",
		Config:    s.testConfig(),
		Status:    model.RoomStatusWaiting,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	coord := NewCoordinator(room, s.recorder, store, s.words, s.scoring, s.clock, testutil.NopLogger())

	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	_, err = coord.Join(s.ctx, "bob", "bob")
	s.Require().NoError(err)

	done := make(chan error, 1)
	go func() { done <- coord.StartGame(s.ctx, "alice") }()
	<-store.entered

	// The mirror write is stalled; room reads must still go through.
	got := make(chan int, 1)
	go func() { got <- len(coord.Players()) }()
	select {
	case n := <-got:
		s.Equal(2, n)
	case <-time.After(time.Second):
		s.Fail("room blocked behind a stalled mirror write")
	}

	close(store.release)
	s.Require().NoError(<-done)
}

// gatedGateway delays the first broadcast of one event type, standing in for
// a delivery goroutine that got descheduled mid-send.
type gatedGateway struct {
	*broadcast.Recorder
	hold    model.EventType
	holding chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedGateway) Broadcast(roomID model.RoomID, event model.Event, exclude ...model.PlayerID) {
	if event.Type == g.hold {
		g.once.Do(func() {
			close(g.holding)
			<-g.release
		})
	}
	g.Recorder.Broadcast(roomID, event, exclude...)
}

func (s *CoordinatorTestSuite) TestBroadcastsFollowCommitOrder() {
	gw := &gatedGateway{
		Recorder: s.recorder,
		hold:     model.EventCorrectGuess,
		holding:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	room := model.Room{
		ID:        "TESTROOM",
		CreatorID: "alice",
		Config:    s.testConfig(),
		Status:    model.RoomStatusWaiting,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	coord := NewCoordinator(room, gw, s.store, s.words, s.scoring, s.clock, testutil.NopLogger())

	for _, id := range []model.PlayerID{"alice", "bob", "carol"} {
		_, err := coord.Join(s.ctx, id, string(id))
		s.Require().NoError(err)
	}
	s.Require().NoError(coord.StartGame(s.ctx, "alice"))
	s.Require().NoError(coord.SelectWord(s.ctx, "alice", "apple"))
	s.recorder.Reset()

	guessDone := make(chan bool, 1)
	go func() { guessDone <- coord.SubmitGuess(s.ctx, "bob", "apple") }()
	<-gw.holding

	// Carol's leave commits after the guess, so it must also publish after
	// it, even though the guess's broadcast is still in flight.
	leaveDone := make(chan error, 1)
	go func() { leaveDone <- coord.Leave(s.ctx, "carol") }()
	time.Sleep(20 * time.Millisecond)

	close(gw.release)
	s.True(<-guessDone)
	s.Require().NoError(<-leaveDone)

	indexOf := func(t model.EventType) int {
		for i, b := range s.recorder.Broadcasts() {
			if b.Event.Type == t {
				return i
			}
		}
		return -1
	}
	correctIdx := indexOf(model.EventCorrectGuess)
	leftIdx := indexOf(model.EventPlayerLeft)
	s.Require().GreaterOrEqual(correctIdx, 0)
	s.Require().GreaterOrEqual(leftIdx, 0)
	s.Less(correctIdx, leftIdx)
}

func (s *CoordinatorTestSuite) TestShouldRetire() {
	coord := s.newCoordinator(s.testConfig(), "alice")

	// Never-joined room counts as drained from creation.
	s.False(coord.ShouldRetire(s.clock.Now(), time.Hour))
	s.True(coord.ShouldRetire(s.clock.Now().Add(2*time.Hour), time.Hour))

	// Joining clears the drained state.
	_, err := coord.Join(s.ctx, "alice", "alice")
	s.Require().NoError(err)
	s.False(coord.ShouldRetire(s.clock.Now().Add(2*time.Hour), time.Hour))
}
