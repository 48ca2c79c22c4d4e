package game

// GameState is the authoritative table state. It is not safe for concurrent
// use on its own; Table serializes every access.
type GameState struct {
	players map[string]*Player
	order   []string // join order, drives turn rotation
	current int      // index into order
	status  Status
	result  *Result // set once the match is finished
}

func newGameState() *GameState {
	return &GameState{
		players: make(map[string]*Player),
		status:  StatusWaiting,
	}
}

// currentTurn returns the session whose turn it is.
func (s *GameState) currentTurn() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[s.current], true
}

// start begins a fresh match with every seated player zeroed.
func (s *GameState) start() {
	for _, id := range s.order {
		s.players[id].resetScore()
	}
	s.current = 0
	s.result = nil
	s.status = StatusPlaying
}

func (s *GameState) advance() {
	s.current = (s.current + 1) % len(s.order)
}

func (s *GameState) allDone() bool {
	if len(s.order) == 0 {
		return false
	}
	for _, id := range s.order {
		if !s.players[id].done() {
			return false
		}
	}
	return true
}

func (s *GameState) finish() {
	s.status = StatusFinished
	r := DetermineResult(s.standings())
	s.result = &r
}

// reset clears the table unconditionally.
func (s *GameState) reset() {
	s.players = make(map[string]*Player)
	s.order = nil
	s.current = 0
	s.status = StatusWaiting
	s.result = nil
}

// depart removes a session and drains the table back to waiting once empty.
// A lone survivor of a live match stays in playing; see Table.Roll.
func (s *GameState) depart(sessionID string) bool {
	if !s.remove(sessionID) {
		return false
	}
	if len(s.order) == 0 {
		s.current = 0
		s.status = StatusWaiting
		s.result = nil
	}
	return true
}

func (s *GameState) standings() []Standing {
	out := make([]Standing, 0, len(s.order))
	for _, id := range s.order {
		p := s.players[id]
		out = append(out, Standing{PlayerID: id, Name: p.Name, Score: p.TotalScore})
	}
	return out
}
