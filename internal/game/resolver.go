package game

import "example.com/dice-duel/internal/dice"

// attemptRoll resolves one roll for requester. Checks run in order:
// game in progress, requester holds the turn, requester has rolls left.
func (s *GameState) attemptRoll(requester string, roller dice.Roller) (RollOutcome, error) {
	if s.status != StatusPlaying || !s.full() {
		return RollOutcome{}, ErrGameNotPlaying
	}
	if turn, ok := s.currentTurn(); !ok || turn != requester {
		return RollOutcome{}, ErrNotYourTurn
	}
	p := s.players[requester]
	if p.done() {
		return RollOutcome{}, ErrTurnLimitReached
	}

	v := roller.Roll(dice.Sides)
	p.DiceHistory = append(p.DiceHistory, v)
	p.TotalScore += v
	p.TurnsTaken++

	if s.allDone() {
		s.finish()
	} else {
		s.advance()
	}

	return RollOutcome{
		PlayerID:        p.ID,
		PlayerName:      p.Name,
		DiceValue:       v,
		NewTotalScore:   p.TotalScore,
		TurnsTakenAfter: p.TurnsTaken,
	}, nil
}
