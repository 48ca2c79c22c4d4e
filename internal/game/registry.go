package game

import "slices"

// admit seats a new player at the end of the join order.
func (s *GameState) admit(sessionID, name string) error {
	if _, ok := s.players[sessionID]; ok {
		return ErrAlreadyJoined
	}
	if len(s.players) >= MaxPlayers {
		return ErrGameFull
	}

	p := &Player{ID: sessionID, Name: name}
	p.resetScore()
	s.players[sessionID] = p
	s.order = append(s.order, sessionID)
	return nil
}

// remove drops the player and its order entry. Reports whether anything changed.
func (s *GameState) remove(sessionID string) bool {
	if _, ok := s.players[sessionID]; !ok {
		return false
	}
	delete(s.players, sessionID)

	idx := slices.Index(s.order, sessionID)
	if idx < 0 {
		return true
	}
	s.order = slices.Delete(s.order, idx, idx+1)

	// keep currentPlayerIndex pointing at the same player where possible
	if idx < s.current {
		s.current--
	}
	if s.current >= len(s.order) {
		s.current = 0
	}
	return true
}

func (s *GameState) full() bool {
	return len(s.order) == MaxPlayers
}
