// Random Agent
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

	"lukechampine.com/frand"
)

// random keeps count of its moves, which also ensures that every
// agent is distinct.
type random struct{ moves uint }

func (r *random) Request(g *rockhop.Game) (*rockhop.Move, bool) {
	if g.Over() {
		panic("Unexpected final state")
	}

	// Random shouldn't be called when the game is already over,
	// so there is at least one move to pick from.
	legal := g.Moves().Slice()
	r.moves++
	return &rockhop.Move{
		Choice:  legal[frand.Intn(len(legal))],
		Comment: fmt.Sprintf("Random move #%d", r.moves),
		Agent:   r,
		State:   g.Position,
		Game:    g,
		Stamp:   time.Now(),
	}, false
}

func (*random) String() string { return "random" }

// MakeRandom returns an agent that only makes random moves
func MakeRandom() rockhop.Agent {
	return &random{}
}
