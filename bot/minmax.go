// MinMax Agent
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
	"fmt"
	"time"

	"go-rockhop"
)

type minmax struct {
	depth int // ply cutoff
	w     rockhop.Weights
}

func (m *minmax) Request(g *rockhop.Game) (*rockhop.Move, bool) {
	if g.Over() {
		panic("Unexpected final state")
	}
	move, ev := FindBestMove(g.Position, m.depth, m.w)
	if !g.Moves().Has(move) {
		panic(fmt.Sprintf("Proposing illegal move %d for %s given %s",
			move, g.Current(), g.Position))
	}
	return &rockhop.Move{
		Choice:  move,
		Comment: fmt.Sprintf("Evaluation: %d", ev),
		Agent:   m,
		State:   g.Position,
		Game:    g,
		Stamp:   time.Now(),
	}, false
}

func (m *minmax) String() string { return fmt.Sprintf("MM%d", m.depth) }

// MakeMinMax returns an agent searching DEPTH plies
func MakeMinMax(depth int, w rockhop.Weights) rockhop.Agent {
	return &minmax{depth: depth, w: w}
}
