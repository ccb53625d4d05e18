// Game Model Tests
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

func TestMakeMove(t *testing.T) {
	is := is.New(t)

	g := NewGame()
	is.Equal(g.Current(), South)
	is.Equal(g.Outcome, ONGOING)

	// Chaining
	is.True(g.MakeMove(3))
	is.Equal(g.Current(), South)

	is.True(g.MakeMove(1))
	is.Equal(g.Current(), North)
	is.Equal(g.History, []uint{3, 1})
}

func TestMakeIllegalMove(t *testing.T) {
	g := NewGame()
	g.MakeMove(1)

	for i, pit := range []uint{0, 7, 42} {
		before := g.Position
		if g.MakeMove(pit) {
			t.Errorf("[%d] Move %d was accepted", i, pit)
		}
		if g.Position != before || len(g.History) != 1 {
			t.Errorf("[%d] Rejected move %d modified the game", i, pit)
		}
	}

	// After North replies, South's pit 1 is still empty
	is.New(t).True(g.MakeMove(1))
	if g.MakeMove(1) {
		t.Error("Emptied pit could be played")
	}
}

func TestGameOver(t *testing.T) {
	is := is.New(t)

	p, err := ParsePosition("<6,20,0,0,0,0,0,0,1,27,0,0,0,0,0>")
	is.NoErr(err)

	g := NewGameFrom(p)
	is.True(!g.Over())
	is.True(g.MakeMove(6))
	is.True(g.Over())
	is.Equal(g.Outcome, LOSS)

	// No moves after the game ended
	is.True(!g.MakeMove(1))
	is.Equal(len(g.History), 1)
}

func TestNewGameFromFinished(t *testing.T) {
	is := is.New(t)

	p, err := ParsePosition("<6,24,24,0,0,0,0,0,0,0,0,0,0,0,0>")
	is.NoErr(err)
	g := NewGameFrom(p)
	is.True(g.Over())
	is.Equal(g.Outcome, DRAW)
}

func TestCopy(t *testing.T) {
	is := is.New(t)

	g := NewGame()
	g.MakeMove(1)
	c := g.Copy()
	c.MakeMove(6)

	is.Equal(len(g.History), 1)
	is.Equal(len(c.History), 2)
	is.True(g.Position != c.Position)
}

func TestOutcomeInvert(t *testing.T) {
	for i, test := range []struct{ o, inv Outcome }{
		{WIN, LOSS}, {LOSS, WIN}, {DRAW, DRAW},
		{ONGOING, ONGOING}, {RESIGN, RESIGN},
	} {
		if test.o.Invert() != test.inv {
			t.Errorf("[%d] Expected %s to invert to %s", i, test.o, test.inv)
		}
	}
}

// A finished position collects the stones left in the pits
func TestNewGameFromCollects(t *testing.T) {
	is := is.New(t)

	p, err := ParsePosition("<6,20,0,0,0,0,0,0,0,1,1,1,1,1,23>")
	is.NoErr(err)
	g := NewGameFrom(p)
	is.True(g.Over())
	is.Equal(g.Outcome, LOSS)
	is.Equal(g.Pov.Mancala(), uint(20))
	is.Equal(g.Opp.Mancala(), uint(28))
	for i := uint(1); i <= Pits; i++ {
		is.Equal(g.Pov.Pit(i), uint(0))
		is.Equal(g.Opp.Pit(i), uint(0))
	}
	is.Equal(g.Eval(DefaultWeights), -Win)
	is.Equal(g.String(), "<6,20,28,0,0,0,0,0,0,0,0,0,0,0,0>")
}
