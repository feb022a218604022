package room

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/9910597111/BlindSketch-Game/internal/broadcast"
	"github.com/9910597111/BlindSketch-Game/internal/dependencies/clock"
	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/services/scoring"
	"github.com/9910597111/BlindSketch-Game/internal/services/words"
	"github.com/9910597111/BlindSketch-Game/internal/storage"
)

// GraceDelay is how long a resolved turn's reveal stays on screen before the
// next turn is announced.
const GraceDelay = 3 * time.Second

// turnState is the ephemeral state of the active turn. It lives only inside
// the coordinator and is never shared across rooms or exposed except as
// broadcast events.
type turnState struct {
	drawerID      model.PlayerID
	wordChoices   []string
	word          string
	revealed      []int
	hintsRevealed int
	// resolved latches once any terminating event has been accepted for
	// this turn; it guards against double resolution.
	resolved bool
}

// Coordinator is the sole authority over one room's turn and round
// progression. Every mutating operation runs under the coordinator's mutex,
// so at most one mutation is in flight at a time; timer firings take the
// same mutex before touching state, which is what makes the resolved latch
// race-safe. Different rooms are fully independent.
type Coordinator struct {
	mu   sync.Mutex
	room model.Room

	players       map[model.PlayerID]*model.Player
	nextJoinOrder int

	turn turnState
	// turnGen increments on every turn transition; timer callbacks carry
	// the generation they were armed for and are dropped if it has moved on.
	turnGen int

	scheduler *Scheduler
	gateway   broadcast.Gateway
	store     storage.Storage
	words     *words.Service
	scoring   *scoring.Service
	clock     clock.Clock
	logger    *slog.Logger

	finishedAt time.Time // set when the room reaches finished
	emptyAt    time.Time // set when the roster drains, cleared on join
}

// NewCoordinator creates a coordinator for a freshly created room
func NewCoordinator(
	room model.Room,
	gateway broadcast.Gateway,
	store storage.Storage,
	wordSource *words.Service,
	scoringService *scoring.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		room:      room,
		players:   make(map[model.PlayerID]*model.Player),
		scheduler: NewScheduler(clk),
		gateway:   gateway,
		store:     store,
		words:     wordSource,
		scoring:   scoringService,
		clock:     clk,
		logger:    logger.With(slog.String("room_id", string(room.ID))),
		emptyAt:   clk.Now(),
	}
}

// Room returns a snapshot of the room's current state
func (c *Coordinator) Room() model.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

// Players returns the live roster sorted by join order
func (c *Coordinator) Players() []model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rosterLocked()
}

// Join adds a player to the room. Joining is rejected when the room is full
// or the game has already finished.
func (c *Coordinator) Join(ctx context.Context, playerID model.PlayerID, username string) (*model.Player, error) {
	if err := model.ValidateUsername(username); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.room.Status == model.RoomStatusFinished {
		c.mu.Unlock()
		return nil, model.ErrGameFinished
	}
	if len(c.players) >= c.room.Config.MaxPlayers {
		c.mu.Unlock()
		return nil, model.ErrRoomFull
	}

	now := c.clock.Now()
	player := &model.Player{
		ID:        playerID,
		RoomID:    c.room.ID,
		Username:  username,
		JoinOrder: c.nextJoinOrder,
		Connected: true,
		JoinedAt:  now,
	}
	c.nextJoinOrder++
	c.players[playerID] = player
	c.emptyAt = time.Time{}

	copied := *player
	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventPlayerJoined, model.PlayerJoinedData{Player: copied}))
	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventSystemMessage, model.SystemMessageData{
		Message: fmt.Sprintf("%s joined the room", username),
	}))
	c.mu.Unlock()

	c.mirrorPlayer(ctx, &copied)
	c.recordSystemMessage(ctx, fmt.Sprintf("%s joined the room", username), false)

	c.logger.Info("player joined",
		slog.String("player_id", string(playerID)),
		slog.String("username", username),
	)

	return &copied, nil
}

// StartGame begins the game. Only the creator may start it; legacy rooms
// with no recorded creator fall back to the lowest-join-order player.
func (c *Coordinator) StartGame(ctx context.Context, requesterID model.PlayerID) error {
	c.mu.Lock()

	if c.room.Status != model.RoomStatusWaiting {
		c.mu.Unlock()
		return model.ErrAlreadyStarted
	}

	roster := c.rosterLocked()
	if len(roster) < 2 {
		c.mu.Unlock()
		return model.ErrInsufficientPlayers
	}

	authorized := c.room.CreatorID == requesterID
	if !authorized {
		// Legacy rooms without a recorded creator, or rooms whose creator
		// left before starting, defer to the earliest joiner.
		_, creatorPresent := c.players[c.room.CreatorID]
		authorized = (c.room.CreatorID == "" || !creatorPresent) && roster[0].ID == requesterID
	}
	if !authorized {
		c.mu.Unlock()
		return model.ErrNotAuthorized
	}

	c.room.Status = model.RoomStatusPlaying
	c.room.CurrentRound = 1
	c.room.UpdatedAt = c.clock.Now()

	drawer := roster[0]
	events := c.beginTurnLocked(drawer.ID)

	// The start announcement goes out before the first turn's events so
	// nobody observes a turn for a game they have not been told started.
	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventGameStarted, model.GameStartedData{
		DrawerID:     drawer.ID,
		DrawerName:   drawer.Username,
		CurrentRound: c.room.CurrentRound,
		TotalRounds:  c.room.Config.TotalRounds,
	}))
	c.deliver(events)
	room := c.room
	c.mu.Unlock()

	c.flushTurnMirror(ctx, &room, true)

	c.logger.Info("game started",
		slog.String("drawer_id", string(drawer.ID)),
		slog.Int("players", len(roster)),
	)

	return nil
}

// SelectWord handles the drawer picking one of the offered words. Actions
// from non-drawers or outside the selection window are expected races and
// are silently ignored; a drawer picking a word that was never offered is a
// real user error.
func (c *Coordinator) SelectWord(ctx context.Context, playerID model.PlayerID, word string) error {
	c.mu.Lock()

	if c.room.Status != model.RoomStatusPlaying ||
		playerID != c.turn.drawerID ||
		c.turn.word != "" ||
		c.turn.resolved {
		c.mu.Unlock()
		return nil
	}

	chosen := ""
	for _, w := range c.turn.wordChoices {
		if w == word {
			chosen = w
			break
		}
	}
	if chosen == "" {
		c.mu.Unlock()
		return model.ErrInvalidWordChoice
	}

	now := c.clock.Now()
	c.turn.word = chosen
	c.turn.wordChoices = nil
	c.turn.revealed = nil
	c.turn.hintsRevealed = 0
	c.room.CurrentWord = chosen
	c.room.TurnStartedAt = now
	c.room.UpdatedAt = now

	gen := c.turnGen
	duration := time.Duration(c.room.Config.RoundDuration) * time.Second
	hintCount := c.room.Config.HintCount

	// Replace the selection deadline with the real round timeout and arm
	// the first hint.
	c.scheduler.StartRound(duration, func() { c.handleRoundTimeout(gen) })
	if hintCount > 0 {
		c.scheduler.ScheduleHint(HintInterval(duration, hintCount), func() { c.handleHint(gen) })
	}

	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventWordSelected, model.WordSelectedData{
		WordLength:    len([]rune(chosen)),
		WordDisplay:   c.scoring.WordDisplay(chosen, nil),
		TimeRemaining: c.room.Config.RoundDuration,
	}))
	room := c.room
	c.mu.Unlock()

	c.flushTurnMirror(ctx, &room, true)

	c.logger.Info("word selected", slog.String("drawer_id", string(playerID)))
	return nil
}

// SubmitGuess evaluates a guess against the current word. It reports whether
// the guess resolved the turn; a non-matching guess is the caller's to hand
// off as ordinary chat. Guesses from the drawer, before a word is chosen, or
// after the turn resolved are ignored.
func (c *Coordinator) SubmitGuess(ctx context.Context, playerID model.PlayerID, text string) bool {
	c.mu.Lock()

	player, ok := c.players[playerID]
	if !ok || c.turn.resolved || c.turn.word == "" || playerID == c.turn.drawerID {
		c.mu.Unlock()
		return false
	}

	guess := strings.ToLower(strings.TrimSpace(text))
	if guess != strings.ToLower(c.turn.word) {
		c.mu.Unlock()
		return false
	}

	// First correct guess wins the resolved latch; the timers race here
	// and lose.
	c.turn.resolved = true
	c.scheduler.CancelTurn()

	guesserPoints, drawerPoints := c.scoring.AwardGuess()
	player.Score += guesserPoints
	guesser := *player

	var drawer *model.Player
	if d, ok := c.players[c.turn.drawerID]; ok {
		d.Score += drawerPoints
		copied := *d
		drawer = &copied
	}

	word := c.turn.word
	gen := c.turnGen
	c.scheduler.ScheduleGrace(GraceDelay, func() { c.handleGraceAdvance(gen) })

	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventCorrectGuess, model.CorrectGuessData{
		PlayerID:   playerID,
		PlayerName: guesser.Username,
		Word:       word,
		Points:     guesserPoints,
	}))
	c.mu.Unlock()

	c.mirrorPlayer(ctx, &guesser)
	if drawer != nil {
		c.mirrorPlayer(ctx, drawer)
	}
	c.recordSystemMessage(ctx, fmt.Sprintf("%s guessed the word!", guesser.Username), true)

	c.logger.Info("correct guess",
		slog.String("player_id", string(playerID)),
		slog.Int("points", guesserPoints),
	)

	return true
}

// UpdateDrawing relays an opaque stroke blob from the current drawer to
// everyone else. Updates from anyone but the drawer are dropped.
func (c *Coordinator) UpdateDrawing(ctx context.Context, playerID model.PlayerID, blob []byte) {
	c.mu.Lock()
	if c.room.Status != model.RoomStatusPlaying || playerID != c.turn.drawerID {
		c.mu.Unlock()
		return
	}
	roomID := c.room.ID
	hints := c.turn.hintsRevealed
	c.gateway.Broadcast(roomID, model.NewEvent(model.EventDrawingUpdate, model.DrawingUpdateData{
		DrawingData: blob,
	}), playerID)
	c.mu.Unlock()

	c.mirrorDrawing(ctx, &model.DrawingState{
		RoomID:        roomID,
		Strokes:       blob,
		HintsRevealed: hints,
		UpdatedAt:     c.clock.Now(),
	})
}

// Leave removes a player. A departing drawer with an unresolved turn forces
// an immediate advance: no grace delay and no word reveal, since nobody is
// left guessing it.
func (c *Coordinator) Leave(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()

	player, ok := c.players[playerID]
	if !ok {
		c.mu.Unlock()
		return model.ErrNotInRoom
	}
	username := player.Username
	delete(c.players, playerID)

	wasDrawer := c.room.Status == model.RoomStatusPlaying && playerID == c.turn.drawerID

	var events []pendingEvent
	if len(c.players) == 0 {
		c.emptyAt = c.clock.Now()
		c.turn.resolved = true
		c.turnGen++
		c.scheduler.CancelAll()
	} else if wasDrawer && !c.turn.resolved {
		c.turn.resolved = true
		c.scheduler.CancelTurn()
		events = c.advanceTurnLocked()
	}

	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventPlayerLeft, model.PlayerLeftData{
		PlayerID: playerID,
		Username: username,
	}))
	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventSystemMessage, model.SystemMessageData{
		Message: fmt.Sprintf("%s left the room", username),
	}))
	c.deliver(events)
	room := c.room
	c.mu.Unlock()

	if err := c.store.DeletePlayer(ctx, playerID); err != nil {
		c.logger.Warn("failed to delete player record", slog.String("error", err.Error()))
	}
	c.recordSystemMessage(ctx, fmt.Sprintf("%s left the room", username), false)
	if len(events) > 0 {
		c.flushTurnMirror(ctx, &room, room.Status == model.RoomStatusPlaying)
	}

	c.logger.Info("player left", slog.String("player_id", string(playerID)))
	return nil
}

// Snapshot assembles the private room_joined view for a player: room state,
// roster, canvas, and recent chat. The secret word is never included.
func (c *Coordinator) Snapshot(ctx context.Context, playerID model.PlayerID) model.RoomJoinedData {
	c.mu.Lock()
	room := c.room
	room.CurrentWord = ""
	roster := c.rosterLocked()
	c.mu.Unlock()

	drawing, err := c.store.GetDrawing(ctx, room.ID)
	if err != nil {
		drawing = nil
	}

	var chat []model.ChatMessage
	if msgs, err := c.store.GetChatMessages(ctx, room.ID, 50); err == nil {
		for _, m := range msgs {
			chat = append(chat, *m)
		}
	}

	return model.RoomJoinedData{
		PlayerID:     playerID,
		Room:         &room,
		Players:      roster,
		Drawing:      drawing,
		ChatMessages: chat,
	}
}

// Close cancels every pending timer. The coordinator must not be used after.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.turn.resolved = true
	c.turnGen++
	c.mu.Unlock()
	c.scheduler.CancelAll()
}

// ShouldRetire reports whether the room is eligible for destruction: it has
// finished, or drained while waiting, longer than the retention window ago.
func (c *Coordinator) ShouldRetire(now time.Time, retention time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.room.Status == model.RoomStatusFinished && !c.finishedAt.IsZero() {
		return now.Sub(c.finishedAt) > retention
	}
	// A drained room is eligible whether it was still waiting or was
	// abandoned mid-game.
	if len(c.players) == 0 && !c.emptyAt.IsZero() {
		return now.Sub(c.emptyAt) > retention
	}
	return false
}

// HasCapacity reports whether another player can join right now
func (c *Coordinator) HasCapacity() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room.Status == model.RoomStatusWaiting && len(c.players) < c.room.Config.MaxPlayers
}

// handleRoundTimeout fires when a turn's clock runs out: either the drawer
// never picked a word (selection deadline) or nobody guessed it in time.
// A firing that lost the race to a correct guess is dropped.
func (c *Coordinator) handleRoundTimeout(gen int) {
	ctx := context.Background()
	c.mu.Lock()

	if gen != c.turnGen || c.turn.resolved || c.room.Status != model.RoomStatusPlaying {
		c.mu.Unlock()
		return
	}

	c.turn.resolved = true
	c.scheduler.CancelTurn()

	if c.turn.word == "" {
		// Selection deadline: nothing to reveal, advance directly.
		events := c.advanceTurnLocked()
		c.deliver(events)
		room := c.room
		c.mu.Unlock()
		c.flushTurnMirror(ctx, &room, room.Status == model.RoomStatusPlaying && len(events) > 0)
		return
	}

	word := c.turn.word
	c.scheduler.ScheduleGrace(GraceDelay, func() { c.handleGraceAdvance(gen) })

	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventTurnTimeout, model.TurnTimeoutData{
		Word:    word,
		Message: fmt.Sprintf("Time's up! The word was: %s", word),
	}))
	c.mu.Unlock()

	c.recordSystemMessage(ctx, fmt.Sprintf("Time's up! The word was: %s", word), false)

	c.logger.Info("turn timed out", slog.String("word", word))
}

// handleHint fires a scheduled hint reveal. Firings for an older turn or a
// resolved turn are dropped with no broadcast and no rescheduling.
func (c *Coordinator) handleHint(gen int) {
	ctx := context.Background()
	c.mu.Lock()

	if gen != c.turnGen || c.turn.resolved || c.turn.word == "" {
		c.mu.Unlock()
		return
	}

	c.turn.hintsRevealed++
	wordLen := len([]rune(c.turn.word))
	c.turn.revealed = c.scoring.HintPositions(wordLen, c.turn.hintsRevealed)

	hintCount := c.room.Config.HintCount
	if c.turn.hintsRevealed < hintCount && len(c.turn.revealed) < wordLen {
		duration := time.Duration(c.room.Config.RoundDuration) * time.Second
		c.scheduler.ScheduleHint(HintInterval(duration, hintCount), func() { c.handleHint(gen) })
	}

	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventHintRevealed, model.HintRevealedData{
		HintPositions: append([]int(nil), c.turn.revealed...),
		HintsRevealed: c.turn.hintsRevealed,
		WordDisplay:   c.scoring.WordDisplay(c.turn.word, c.turn.revealed),
		TotalHints:    hintCount,
	}))
	roomID := c.room.ID
	hints := c.turn.hintsRevealed
	c.mu.Unlock()

	// Mirror the hint count without clobbering the stored strokes.
	if drawing, err := c.store.GetDrawing(ctx, roomID); err == nil {
		drawing.HintsRevealed = hints
		drawing.UpdatedAt = c.clock.Now()
		c.mirrorDrawing(ctx, drawing)
	}
}

// handleGraceAdvance is the scheduled continuation after a resolved turn's
// reveal. It is dropped if the turn has already advanced by other means.
func (c *Coordinator) handleGraceAdvance(gen int) {
	ctx := context.Background()
	c.mu.Lock()
	if gen != c.turnGen || c.room.Status != model.RoomStatusPlaying {
		c.mu.Unlock()
		return
	}
	events := c.advanceTurnLocked()
	c.deliver(events)
	room := c.room
	c.mu.Unlock()
	c.flushTurnMirror(ctx, &room, room.Status == model.RoomStatusPlaying && len(events) > 0)
}

// pendingEvent is a delivery assembled during a composite transition so one
// state change emits its events as a unit. Delivery happens while the lock is
// still held: the gateway enqueue never blocks, and emitting under the lock
// is what guarantees observers see events in commit order.
type pendingEvent struct {
	private  bool
	playerID model.PlayerID
	event    model.Event
}

func (c *Coordinator) deliver(events []pendingEvent) {
	for _, e := range events {
		if e.private {
			c.gateway.SendTo(e.playerID, e.event)
		} else {
			c.gateway.Broadcast(c.room.ID, e.event)
		}
	}
}

// advanceTurnLocked rotates to the next drawer, incrementing the round when
// the rotation wraps, and finishing the game when rounds are exhausted.
// Caller must hold c.mu.
func (c *Coordinator) advanceTurnLocked() []pendingEvent {
	roster := c.rosterLocked()
	if len(roster) == 0 {
		c.turnGen++
		c.scheduler.CancelAll()
		return nil
	}

	idx := -1
	for i, p := range roster {
		if p.ID == c.room.CurrentDrawerID {
			idx = i
			break
		}
	}
	next := (idx + 1) % len(roster)

	var events []pendingEvent
	if next == 0 && c.room.CurrentDrawerID != "" {
		completed := c.room.CurrentRound
		c.room.CurrentRound++
		if c.room.CurrentRound > c.room.Config.TotalRounds {
			return c.finishGameLocked()
		}
		events = append(events, pendingEvent{event: model.NewEvent(model.EventRoundComplete, model.RoundCompleteData{
			CompletedRound: completed,
			NextRound:      c.room.CurrentRound,
		})})
	}

	events = append(events, c.beginTurnLocked(roster[next].ID)...)
	return events
}

// beginTurnLocked starts a turn for the given drawer: fresh word choices
// delivered privately, a new_turn announcement, and the selection deadline
// armed. Mirror writes are the caller's to flush after unlocking.
// Caller must hold c.mu.
func (c *Coordinator) beginTurnLocked(drawerID model.PlayerID) []pendingEvent {
	now := c.clock.Now()

	c.turnGen++
	gen := c.turnGen
	c.turn = turnState{drawerID: drawerID}

	c.room.CurrentDrawerID = drawerID
	c.room.CurrentWord = ""
	c.room.TurnStartedAt = now
	c.room.UpdatedAt = now

	drawer := c.players[drawerID]

	choices, err := c.words.RandomWords(c.room.Config.WordChoiceCount)
	if err != nil {
		c.logger.Error("failed to generate word choices", slog.String("error", err.Error()))
	}
	c.turn.wordChoices = choices

	// A drawer who never picks cannot stall the room: the selection window
	// shares the round duration.
	duration := time.Duration(c.room.Config.RoundDuration) * time.Second
	c.scheduler.StartRound(duration, func() { c.handleRoundTimeout(gen) })

	events := []pendingEvent{
		{private: true, playerID: drawerID, event: model.NewEvent(model.EventWordChoices, model.WordChoicesData{
			Words: choices,
		})},
		{event: model.NewEvent(model.EventNewTurn, model.NewTurnData{
			DrawerID:      drawerID,
			DrawerName:    drawer.Username,
			RoundDuration: c.room.Config.RoundDuration,
			CurrentRound:  c.room.CurrentRound,
			TotalRounds:   c.room.Config.TotalRounds,
		})},
	}
	return events
}

// finishGameLocked transitions the room to finished and releases all timers.
// Caller must hold c.mu.
func (c *Coordinator) finishGameLocked() []pendingEvent {
	now := c.clock.Now()
	c.room.Status = model.RoomStatusFinished
	c.room.CurrentDrawerID = ""
	c.room.CurrentWord = ""
	c.room.UpdatedAt = now
	c.finishedAt = now
	c.turnGen++
	c.turn = turnState{resolved: true}
	c.scheduler.CancelAll()

	standings := c.rosterLocked()
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].JoinOrder < standings[j].JoinOrder
	})

	var winner *model.Player
	if len(standings) > 0 {
		w := standings[0]
		winner = &w
	}

	c.logger.Info("game ended", slog.Int("players", len(standings)))

	return []pendingEvent{{event: model.NewEvent(model.EventGameEnded, model.GameEndedData{
		FinalScores: standings,
		Winner:      winner,
	})}}
}

// rosterLocked returns the live roster sorted by join order.
// Caller must hold c.mu.
func (c *Coordinator) rosterLocked() []model.Player {
	roster := make([]model.Player, 0, len(c.players))
	for _, p := range c.players {
		roster = append(roster, *p)
	}
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].JoinOrder < roster[j].JoinOrder
	})
	return roster
}

// Persistence below is a best-effort mirror: the in-memory state is the
// source of truth for turn logic, so mirror failures are logged and dropped
// rather than surfaced as game errors. Mirror writes always run after the
// room lock is released; a stalled backend must not freeze the room.

// flushTurnMirror writes a committed room snapshot to the mirror. A fresh
// turn (or a fresh word selection) also resets the stored canvas.
func (c *Coordinator) flushTurnMirror(ctx context.Context, room *model.Room, clearCanvas bool) {
	c.mirrorRoom(ctx, room)
	if clearCanvas {
		c.clearCanvas(ctx, room.ID)
	}
}

func (c *Coordinator) mirrorRoom(ctx context.Context, room *model.Room) {
	if err := c.store.SaveRoom(ctx, room); err != nil {
		c.logger.Warn("failed to mirror room state", slog.String("error", err.Error()))
	}
}

func (c *Coordinator) mirrorPlayer(ctx context.Context, player *model.Player) {
	if err := c.store.SavePlayer(ctx, player); err != nil {
		c.logger.Warn("failed to mirror player state", slog.String("error", err.Error()))
	}
}

func (c *Coordinator) mirrorDrawing(ctx context.Context, drawing *model.DrawingState) {
	if err := c.store.SaveDrawing(ctx, drawing); err != nil {
		c.logger.Warn("failed to mirror drawing state", slog.String("error", err.Error()))
	}
}

func (c *Coordinator) clearCanvas(ctx context.Context, roomID model.RoomID) {
	c.mirrorDrawing(ctx, &model.DrawingState{
		RoomID:    roomID,
		UpdatedAt: c.clock.Now(),
	})
}

func (c *Coordinator) recordSystemMessage(ctx context.Context, text string, correctGuess bool) {
	msg := model.NewSystemMessage(c.room.ID, text, correctGuess, c.clock.Now())
	if err := c.store.SaveChatMessage(ctx, msg); err != nil {
		c.logger.Warn("failed to record system message", slog.String("error", err.Error()))
	}
}

// RecordChat persists and broadcasts an ordinary (non-guess) chat message on
// behalf of the transport layer.
func (c *Coordinator) RecordChat(ctx context.Context, playerID model.PlayerID, text string) {
	c.mu.Lock()
	player, ok := c.players[playerID]
	if !ok {
		c.mu.Unlock()
		return
	}
	msg := model.ChatMessage{
		RoomID:    c.room.ID,
		PlayerID:  playerID,
		Username:  player.Username,
		Message:   text,
		Timestamp: c.clock.Now(),
	}
	c.gateway.Broadcast(c.room.ID, model.NewEvent(model.EventChatMessage, model.ChatMessageData{Message: msg}))
	c.mu.Unlock()

	if err := c.store.SaveChatMessage(ctx, &msg); err != nil {
		c.logger.Warn("failed to record chat message", slog.String("error", err.Error()))
	}
}
