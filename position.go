// Kalah Positions
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
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	repr = regexp.MustCompile(`^\s*<\s*(\d+(\s*,\s*\d+)+)\s*>\s*(\*?)\s*$`)

	// ErrInvalidPosition is returned when a position cannot be parsed
	ErrInvalidPosition = errors.New("invalid position")
)

// Position is a board seen from the player that moves first.
//
// Positions are values: copying one yields an independent board,
// which is what the search relies on.
type Position struct {
	Pov Side // point of view
	Opp Side // opponent
}

// MakePosition returns the starting position, POV to move
func MakePosition() Position {
	return Position{
		Pov: MakeSide(true),
		Opp: MakeSide(false),
	}
}

// Current returns the side to move and its opponent
func (p *Position) Current() (self, other *Side) {
	if p.Pov.HasTurn() {
		return &p.Pov, &p.Opp
	}
	return &p.Opp, &p.Pov
}

// PovTurn returns true if the point of view has to move
func (p Position) PovTurn() bool {
	return p.Pov.HasTurn()
}

// Over returns true if either side has run out of moves
func (p Position) Over() bool {
	return !p.Pov.HasMoves() || !p.Opp.HasMoves()
}

// Moves returns the legal moves of the side to move
func (p Position) Moves() Moves {
	self, _ := p.Current()
	return Legal(*self)
}

// Play sows PIT for the side to move, passing the turn unless the
// move chains.  When this ends the game, the remaining stones are
// collected.  The move is not checked for legality.
func (p *Position) Play(pit uint) (chain bool) {
	self, other := p.Current()
	chain = Sow(self, other, pit)
	if !chain {
		p.Pov.ToggleTurn()
		p.Opp.ToggleTurn()
	}
	p.Settle()
	return
}

// Settle collects the remaining stones of both sides if the game is
// over.  Positions reached by Play are always settled.
func (p *Position) Settle() {
	if p.Over() {
		p.Pov.Collect()
		p.Opp.Collect()
	}
}

// Eval scores the position from the point of view
func (p Position) Eval(w Weights) int64 {
	return Evaluate(p.Pov, p.Opp, w)
}

// Outcome of the game for the point of view
func (p Position) Outcome() Outcome {
	if !p.Over() {
		return ONGOING
	}

	pov, opp := p.Pov.Sum(), p.Opp.Sum()
	switch {
	case pov > opp:
		return WIN
	case pov < opp:
		return LOSS
	default:
		return DRAW
	}
}

// Mirror returns the position from the opponents point of view
func (p Position) Mirror() Position {
	return Position{Pov: p.Opp, Opp: p.Pov}
}

// String converts a position into a KGP representation, followed by
// an asterisk if the opponent is to move.
func (p Position) String() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<%d,%d,%d", Pits, p.Pov.Mancala(), p.Opp.Mancala())
	for i := uint(1); i <= Pits; i++ {
		fmt.Fprintf(&buf, ",%d", p.Pov.lane(i))
	}
	for i := uint(1); i <= Pits; i++ {
		fmt.Fprintf(&buf, ",%d", p.Opp.lane(i))
	}
	fmt.Fprint(&buf, ">")
	if !p.PovTurn() {
		fmt.Fprint(&buf, "*")
	}

	return buf.String()
}

// ParsePosition reads a position in the notation of Position.String
func ParsePosition(state string) (Position, error) {
	var p Position

	match := repr.FindStringSubmatch(state)
	if match == nil {
		return p, ErrInvalidPosition
	}

	var data []uint64
	for _, part := range strings.Split(match[1], ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		data = append(data, n)
	}

	if data[0] != Pits || len(data) != 1+2+Pits*2 {
		return p, fmt.Errorf("%w: only boards of size %d are supported",
			ErrInvalidPosition, Pits)
	}

	var total uint64
	for _, n := range data[1:] {
		total += n
	}
	if total != Stones {
		return p, fmt.Errorf("%w: %d stones on the board, expected %d",
			ErrInvalidPosition, total, Stones)
	}

	p.Pov = Side(data[1])
	p.Opp = Side(data[2])
	for i := uint(1); i <= Pits; i++ {
		p.Pov |= Side(data[2+i] << (8 * i))
		p.Opp |= Side(data[2+Pits+i] << (8 * i))
	}
	if match[3] == "" {
		p.Pov.ToggleTurn()
	} else {
		p.Opp.ToggleTurn()
	}

	return p, nil
}
