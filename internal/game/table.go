package game

import (
	"log/slog"
	"strings"
	"sync"

	"example.com/dice-duel/internal/dice"
)

// Table is the single-writer owner of a GameState. Every exported method is
// one critical section: validate, mutate, then publish.
type Table struct {
	mu    sync.Mutex
	state *GameState

	roller dice.Roller
	pub    Publisher
	log    *slog.Logger
}

func NewTable(roller dice.Roller, pub Publisher, log *slog.Logger) *Table {
	if pub == nil {
		pub = PublisherFunc(func(Event) {})
	}
	if log == nil {
		log = slog.Default()
	}
	return &Table{
		state:  newGameState(),
		roller: roller,
		pub:    pub,
		log:    log,
	}
}

// Join seats sessionID under playerName. The second seat starts the match.
func (t *Table) Join(sessionID, playerName string) error {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return ErrEmptyName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.state.admit(sessionID, name); err != nil {
		return err
	}
	t.log.Info("player joined", "session", sessionID, "player", name, "seat", len(t.state.order))

	t.publishLocked(EventGameStateUpdate, t.state.stateSnapshot())

	if t.state.full() {
		t.state.start()
		t.log.Info("match started", "first", t.state.order[0])
		t.publishLocked(EventGameStart, GameStartPayload{
			Players:     t.state.playersSnapshot(),
			CurrentTurn: t.state.currentTurnPtr(),
		})
	}
	return nil
}

// Roll resolves a roll for sessionID and publishes dice_rolled followed by
// either turn_change or game_end.
func (t *Table) Roll(sessionID string) (RollOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out, err := t.state.attemptRoll(sessionID, t.roller)
	if err != nil {
		return RollOutcome{}, err
	}
	t.log.Debug("dice rolled", "session", sessionID, "value", out.DiceValue, "total", out.NewTotalScore)

	t.publishLocked(EventDiceRolled, DiceRolledPayload{
		PlayerID:        out.PlayerID,
		PlayerName:      out.PlayerName,
		DiceResult:      out.DiceValue,
		TotalScore:      out.NewTotalScore,
		TurnsTakenAfter: out.TurnsTakenAfter,
	})

	if t.state.status == StatusFinished {
		t.log.Info("match finished", "result", t.state.result.Type)
		t.publishLocked(EventGameEnd, GameEndPayload{
			Players: t.state.playersSnapshot(),
			Result:  *t.state.result,
		})
		return out, nil
	}

	t.publishLocked(EventTurnChange, TurnChangePayload{
		CurrentTurn: t.state.currentTurnPtr(),
		Players:     t.state.playersSnapshot(),
	})
	return out, nil
}

// NewGame clears the table from any state.
func (t *Table) NewGame() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.reset()
	t.log.Info("table reset")
	t.publishLocked(EventGameReset, nil)
}

// Leave removes sessionID if it was seated. Sessions that never joined are
// ignored and nothing is published.
func (t *Table) Leave(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.depart(sessionID) {
		return false
	}
	t.log.Info("player left", "session", sessionID, "remaining", len(t.state.order), "status", t.state.status)

	t.publishLocked(EventPlayerDisconnected, PlayerDisconnectedPayload{
		PlayerID: sessionID,
		Players:  t.state.playersSnapshot(),
		Status:   t.state.status,
	})
	return true
}

// Snapshot returns the current state as carried by game_state_update.
func (t *Table) Snapshot() StatePayload {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.stateSnapshot()
}

// WithSnapshot runs fn with the current state inside the critical section,
// so nothing fn sends can be overtaken by a concurrent broadcast.
func (t *Table) WithSnapshot(fn func(StatePayload)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.state.stateSnapshot())
}

func (t *Table) publishLocked(typ EventType, payload any) {
	t.pub.Publish(Event{Type: typ, Payload: payload})
}
