package game

// playersSnapshot deep-copies the player map so published events never
// alias live state.
func (s *GameState) playersSnapshot() map[string]Player {
	out := make(map[string]Player, len(s.players))
	for i, id := range s.order {
		p := s.players[id]
		out[id] = Player{
			ID:          p.ID,
			Name:        p.Name,
			Seat:        i + 1,
			TurnsTaken:  p.TurnsTaken,
			TotalScore:  p.TotalScore,
			DiceHistory: append([]int{}, p.DiceHistory...),
		}
	}
	return out
}

func (s *GameState) currentTurnPtr() *string {
	id, ok := s.currentTurn()
	if !ok {
		return nil
	}
	return &id
}

func (s *GameState) stateSnapshot() StatePayload {
	return StatePayload{
		Players:     s.playersSnapshot(),
		Status:      s.status,
		CurrentTurn: s.currentTurnPtr(),
	}
}
