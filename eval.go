// Static Position Evaluation
//
// Copyright (c) 2024  Philip Kaludercic
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

package rockhop

const (
	// Win is the evaluation of a position that is decided
	Win int64 = 2_000_000
	// ToWin is the number of stones in a mancala that guarantee
	// a win, as the opponent can at most collect all the rest.
	ToWin = Stones/2 + 1
)

// Weights parametrise the evaluation of undecided positions
type Weights struct {
	Mancala int64 `toml:"mancala"` // per stone in a mancala
	Pit     int64 `toml:"pit"`     // per stone in a pit
}

// DefaultWeights value a banked stone ten times as much as one in play
var DefaultWeights = Weights{
	Mancala: 50,
	Pit:     5,
}

// Evaluate scores the board from the point of view of POV
func Evaluate(pov, other Side, w Weights) int64 {
	switch {
	case pov.Mancala() >= ToWin:
		return Win
	case other.Mancala() >= ToWin:
		return -Win
	}

	score := (int64(pov.Mancala()) - int64(other.Mancala())) * w.Mancala
	for i := uint(1); i <= Pits; i++ {
		score += (int64(pov.lane(i)) - int64(other.lane(i))) * w.Pit
	}
	return score
}
