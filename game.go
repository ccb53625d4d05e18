// Common Interfaces and the Game Model
//
// Copyright (c) 2021, 2022, 2024  Philip Kaludercic
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
	"fmt"
	"time"
)

type (
	Player  bool
	Outcome uint8
)

// The point of view plays south and moves first
const South, North Player = false, true

// Possible game states
const (
	ONGOING Outcome = iota
	WIN
	DRAW
	LOSS
	RESIGN
)

func (o Outcome) String() string {
	switch o {
	case ONGOING:
		return "Ongoing"
	case WIN:
		return "Win"
	case DRAW:
		return "Draw"
	case LOSS:
		return "Loss"
	case RESIGN:
		return "Resign"
	default:
		panic(fmt.Sprintf("Illegal outcome: %d", o))
	}
}

// Invert returns the outcome for the other player
func (o Outcome) Invert() Outcome {
	switch o {
	case WIN:
		return LOSS
	case LOSS:
		return WIN
	}
	return o
}

func (p Player) String() string {
	switch p {
	case South:
		return "South"
	case North:
		return "North"
	}
	panic("Illegal player")
}

// Agent is anything that can decide on a move
type Agent interface {
	fmt.Stringer
	// Request a move for the active player.  If the second value
	// is true, the agent resigns.
	Request(*Game) (*Move, bool)
}

type Move struct {
	Choice  uint
	Comment string
	Agent   Agent
	State   Position // position before the move
	Game    *Game
	Stamp   time.Time
}

type Game struct {
	// The board the game is being played on
	Position
	Start   Position // board before the first move
	Id      int64
	South   Agent
	North   Agent
	Outcome Outcome
	// Pits played so far, in order
	History []uint
	Started time.Time
}

// NewGame returns a game in the starting position
func NewGame() *Game {
	return NewGameFrom(MakePosition())
}

// NewGameFrom returns a game that continues from P
func NewGameFrom(p Position) *Game {
	p.Settle()
	g := &Game{
		Position: p,
		Start:    p,
		Started:  time.Now(),
	}
	if p.Over() {
		g.Outcome = p.Outcome()
	}
	return g
}

// Current returns the player to move
func (g *Game) Current() Player {
	if g.PovTurn() {
		return South
	}
	return North
}

func (g *Game) Side(a Agent) Player {
	switch a {
	case g.South:
		return South
	case g.North:
		return North
	default:
		panic("Unknown Agent")
	}
}

func (g *Game) Player(p Player) Agent {
	if p == North {
		return g.North
	}
	return g.South
}

func (g *Game) Active() Agent {
	return g.Player(g.Current())
}

// MakeMove plays PIT if it is legal and reports if it was
func (g *Game) MakeMove(pit uint) bool {
	if g.Over() || !g.Moves().Has(pit) {
		return false
	}

	g.Play(pit)
	g.History = append(g.History, pit)
	Debug.Debug().
		Uint("pit", pit).
		Stringer("position", g.Position).
		Msg("Made move")

	if g.Over() {
		g.Outcome = g.Position.Outcome()
	}
	return true
}

// Copy returns an independent copy of the game
func (g *Game) Copy() *Game {
	c := *g
	c.History = append([]uint(nil), g.History...)
	return &c
}
