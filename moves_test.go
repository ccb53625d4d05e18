// Move Generation Tests
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

import (
	"testing"

	"github.com/matryer/is"
)

func TestMoves(t *testing.T) {
	for i, test := range []struct {
		side  board
		moves []uint
		last  uint
	}{
		{
			side:  board{0, 4, 4, 4, 4, 4, 4},
			moves: []uint{1, 2, 3, 4, 5, 6},
			last:  6,
		},
		{
			side:  board{7, 0, 3, 0, 1, 0, 0},
			moves: []uint{2, 4},
			last:  4,
		},
		{
			side:  board{48, 0, 0, 0, 0, 0, 0},
			moves: []uint{},
			last:  0,
		},
		{
			side:  board{0, 1, 0, 0, 0, 0, 0},
			moves: []uint{1},
			last:  1,
		},
	} {
		m := Legal(test.side.side())
		if got := m.Slice(); len(got) != len(test.moves) {
			t.Errorf("[%d] Expected moves %v, got %v", i, test.moves, got)
		} else {
			for j := range got {
				if got[j] != test.moves[j] {
					t.Errorf("[%d] Expected moves %v, got %v", i, test.moves, got)
					break
				}
			}
		}
		if m.Count() != uint(len(test.moves)) {
			t.Errorf("[%d] Expected %d moves, counted %d", i, len(test.moves), m.Count())
		}
		if m.Last() != test.last {
			t.Errorf("[%d] Expected last move %d, got %d", i, test.last, m.Last())
		}
	}
}

func TestMovesHas(t *testing.T) {
	is := is.New(t)

	m := Legal(board{0, 1, 0, 1, 0, 0, 1}.side())
	is.True(m.Has(1))
	is.True(!m.Has(2))
	is.True(m.Has(3))
	is.True(!m.Has(4))
	is.True(m.Has(6))
	is.True(!m.Has(0)) // the mancala is never a move
	is.True(!m.Has(7))
}

func TestMovesFollowTurn(t *testing.T) {
	is := is.New(t)

	p := Position{
		Pov: board{0, 1, 0, 0, 0, 0, 0}.side(),
		Opp: board{0, 0, 0, 0, 0, 0, 2}.side(),
	}
	p.Opp.ToggleTurn()
	is.Equal(p.Moves().Slice(), []uint{6})

	p.Opp.ToggleTurn()
	p.Pov.ToggleTurn()
	is.Equal(p.Moves().Slice(), []uint{1})
}
