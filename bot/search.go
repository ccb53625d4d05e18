// Alpha-Beta Search
//
// Copyright (c) 2022, 2024  Philip Kaludercic
//
// This file is part of go-rockhop.
//
// go-rockhop is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-rockhop is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-rockhop. If not, see
// <http://www.gnu.org/licenses/>

package bot

import (
	"math"
	"time"

	"go-rockhop"
)

const (
	ScoreMin int64 = math.MinInt64
	ScoreMax int64 = math.MaxInt64

	captureGrade = 1000
	chainGrade   = 100
)

// Grade estimates how promising it is for SELF to sow PIT without
// looking ahead.  Captures are graded above chain moves, and both
// above everything else.
func Grade(self, other rockhop.Side, pit uint) int {
	var (
		n    = self.Pit(pit)
		dist = rockhop.Pits + 1 - pit // distance to the mancala
	)

	switch {
	case n == 0:
		return 0
	case n < dist:
		land := pit + n
		if self.Pit(land) == 0 {
			if c := other.Pit(rockhop.Pits + 1 - land); c > 0 {
				return captureGrade + int(c) + 1
			}
		}
	case n == rockhop.Lap:
		// A full lap ends in the emptied pit, and puts one
		// more stone into the opposite pit.
		return captureGrade + int(other.Pit(dist)) + 2
	case n%rockhop.Lap == dist:
		return chainGrade + int(pit)
	}
	return 0
}

// order lists the legal moves of P, most promising first.  Moves
// with the same grade remain in ascending order.
func order(p *rockhop.Position) (moves [rockhop.Pits]uint, n int) {
	var grades [rockhop.Pits]int

	self, other := p.Current()
	for pit := uint(1); pit <= rockhop.Pits; pit++ {
		if !self.Legal(pit) {
			continue
		}

		g := Grade(*self, *other, pit)
		i := n
		for ; i > 0 && grades[i-1] < g; i-- {
			grades[i], moves[i] = grades[i-1], moves[i-1]
		}
		grades[i], moves[i] = g, pit
		n++
	}
	return
}

// Order returns the legal moves of P in the order they are searched
func Order(p rockhop.Position) []uint {
	moves, n := order(&p)
	return moves[:n:n]
}

type searcher struct {
	w     rockhop.Weights
	nodes uint64
}

func (s *searcher) alphaBeta(σ rockhop.Position, δ int, α, β int64) int64 {
	s.nodes++
	if δ <= 0 || σ.Over() {
		σ.Settle()
		return σ.Eval(s.w)
	}

	var Φ int64 // best evaluation
	moves, n := order(&σ)
	if σ.PovTurn() { // maximising
		Φ = ScoreMin
		for _, m := range moves[:n] {
			// Each child gets its own copy, so neither the
			// parent nor any sibling is modified.
			ς := σ
			ς.Play(m)
			Φ = max(Φ, s.alphaBeta(ς, δ-1, α, β))
			if Φ >= β {
				break
			}
			α = max(α, Φ)
		}
	} else { // minimising
		Φ = ScoreMax
		for _, m := range moves[:n] {
			ς := σ
			ς.Play(m)
			Φ = min(Φ, s.alphaBeta(ς, δ-1, α, β))
			if Φ <= α {
				break
			}
			β = min(β, Φ)
		}
	}

	return Φ
}

func (s *searcher) root(σ rockhop.Position, Δ int) (μ uint, Φ int64) {
	if σ.Over() {
		σ.Settle()
		return 0, σ.Eval(s.w)
	}

	// NOTE: Every move at the root is searched.  The window is
	// kept just below (or above) the best evaluation, so that
	// moves scoring the same are evaluated exactly and the lowest
	// pit wins a tie, independently of the order moves are
	// searched in.
	α, β := ScoreMin, ScoreMax
	maximising := σ.PovTurn()
	if maximising {
		Φ = ScoreMin
	} else {
		Φ = ScoreMax
	}

	moves, n := order(&σ)
	for _, m := range moves[:n] {
		ς := σ
		ς.Play(m)
		φ := s.alphaBeta(ς, Δ-1, α, β)

		if maximising {
			if φ > Φ || (φ == Φ && m < μ) {
				Φ, μ = φ, m
			}
			α = Φ - 1
		} else {
			if φ < Φ || (φ == Φ && m < μ) {
				Φ, μ = φ, m
			}
			β = Φ + 1
		}
	}

	return
}

// AlphaBeta evaluates P by searching DEPTH plies, pruning every
// branch that cannot fall into the window (ALPHA, BETA).
func AlphaBeta(p rockhop.Position, depth int, alpha, beta int64, w rockhop.Weights) int64 {
	s := searcher{w: w}
	return s.alphaBeta(p, depth, alpha, beta)
}

// FindBestMove searches DEPTH plies (at least one) and returns the
// best move for the side to move in P along with its evaluation.
// The evaluation is always from the point of view of P.
func FindBestMove(p rockhop.Position, depth int, w rockhop.Weights) (uint, int64) {
	s := searcher{w: w}

	start := time.Now()
	move, ev := s.root(p, depth)
	rockhop.Debug.Debug().
		Stringer("position", p).
		Int("depth", depth).
		Uint64("nodes", s.nodes).
		Dur("took", time.Since(start)).
		Uint("move", move).
		Int64("eval", ev).
		Msg("Search finished")

	return move, ev
}
