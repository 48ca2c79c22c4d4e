package game

import (
	"cmp"
	"slices"
)

// ResultType says whether a finished match has a winner or ended level.
type ResultType string

const (
	ResultWinner ResultType = "winner"
	ResultDraw   ResultType = "draw"
)

// Standing is a player's final line in the result.
type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Result is either {type: winner, winner, loser} or {type: draw, players}.
type Result struct {
	Type    ResultType `json:"type"`
	Winner  *Standing  `json:"winner,omitempty"`
	Loser   *Standing  `json:"loser,omitempty"`
	Players []Standing `json:"players,omitempty"`
}

// DetermineResult ranks standings by score, highest first. Ties keep join
// order. Two-player only: the top two are compared and a tie is a draw.
func DetermineResult(standings []Standing) Result {
	ranked := slices.Clone(standings)
	slices.SortStableFunc(ranked, func(a, b Standing) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(ranked) < 2 || ranked[0].Score == ranked[1].Score {
		return Result{Type: ResultDraw, Players: ranked}
	}
	winner, loser := ranked[0], ranked[1]
	return Result{Type: ResultWinner, Winner: &winner, Loser: &loser}
}
