// Packed Kalah Side
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
	// Pits is the number of pits on each side of the board.
	Pits = 6
	// Init is the number of stones in each pit at the start.
	Init = 4
	// Stones is the number of stones in the game.
	Stones = Init * Pits * 2
	// Lap is the number of lanes a full sowing lap visits: all
	// pits on both sides and the sowers own mancala.
	Lap = 2*Pits + 1
)

// Every lane is a byte.  No lane may ever hold more than every stone
// in the game, so this fails to compile if that doesn't fit.
const _ uint8 = Stones

const (
	turnBit  uint64 = 0x8000000000000000
	pitOnes  uint64 = 0x0001010101010100 // one stone per pit
	allOnes  uint64 = 0x0001010101010101 // one stone per pit and mancala
	laneMask uint64 = 0x00000000000000FF
	pitMask  uint64 = 0x00FFFFFFFFFFFF00
)

// Side is one players half of the board, packed into a single word.
//
// The least significant byte is the mancala, the next six bytes are
// pits 1 through 6.  Of the most significant byte only the highest
// bit is used, to record if it is this sides turn.  Sowing proceeds
// from lower to higher pits, into the mancala and then over to the
// opponents pit 1.  Pit i is opposite of the opponents pit 7-i.
type Side uint64

// MakeSide returns a side in the starting position
func MakeSide(turn bool) Side {
	s := Side(pitOnes * Init)
	if turn {
		s |= Side(turnBit)
	}
	return s
}

// lane extracts the byte at lane I
func (s Side) lane(i uint) uint {
	return uint((uint64(s) >> (8 * i)) & laneMask)
}

// Pit returns the number of stones in pit I, or the mancala for 0
func (s Side) Pit(i uint) uint {
	if i > Pits {
		panic("Illegal access")
	}
	return s.lane(i)
}

// Mancala returns the number of stones in the store
func (s Side) Mancala() uint {
	return s.lane(0)
}

// Sum returns the number of stones on this side, including the mancala
func (s Side) Sum() uint {
	return s.lane(0) + s.inPits()
}

// inPits adds up all pit lanes.  Each partial sum fits into a lane, so
// a single multiplication accumulates everything in the top byte.
func (s Side) inPits() uint {
	x := (uint64(s) & pitMask) >> 8
	return uint((x * 0x0101010101010101) >> 56)
}

// HasMoves returns true if any pit holds a stone
func (s Side) HasMoves() bool {
	return uint64(s)&pitMask != 0
}

// HasTurn returns true if it is this sides turn
func (s Side) HasTurn() bool {
	return uint64(s)&turnBit != 0
}

// ToggleTurn flips the turn marker
func (s *Side) ToggleTurn() {
	*s ^= Side(turnBit)
}

// Collect moves all stones from the pits into the mancala
func (s *Side) Collect() {
	sum := uint64(s.inPits())
	*s = Side((uint64(*s) &^ pitMask) + sum)
}

// lanes returns a mask covering the lanes LO through HI
func lanes(lo, hi uint) uint64 {
	if hi < lo {
		return 0
	}
	return (^uint64(0) << (8 * lo)) & (^uint64(0) >> (8 * (7 - hi)))
}

// Sow plays pit PIT for SELF against OTHER and reports if SELF may
// move again.
//
// The caller has to ensure the move is legal: sowing from an empty
// pit or outside of [1, Pits] is not checked for.  The turn markers
// are left untouched.
func Sow(self, other *Side, pit uint) bool {
	var (
		p = 8 * pit
		n = uint((uint64(*self) >> p) & laneMask)
	)

	// Pick up the stones
	*self -= Side(uint64(n) << p)

	// Every full lap leaves a stone in every lane but the opponents
	// mancala.
	laps, r := n/Lap, n%Lap
	*self += Side(allOnes * uint64(laps))
	*other += Side(pitOnes * uint64(laps))

	// Distribute the remainder: first up to our own mancala...
	own := lanes(pit+1, min(pit+r, Pits))
	if r >= Pits+1-pit {
		own |= laneMask
	}
	// ...then over to the opponent...
	var their uint64
	if r > Pits+1-pit {
		their = lanes(1, min(r-(Pits+1-pit), Pits))
	}
	// ...and back around to our first pits.
	if r > Lap-pit {
		own |= lanes(1, r-(Lap-pit))
	}
	*self += Side(allOnes & own)
	*other += Side(pitOnes & their)

	// The offset of the last stone from PIT, a full lap ends in
	// PIT itself.
	last := r
	if last == 0 {
		last = Lap
	}

	var land uint
	switch {
	case last <= Pits-pit:
		land = pit + last
	case last == Pits+1-pit:
		return true
	case last <= Lap-pit:
		return false
	default:
		land = last - (Lap - pit)
	}

	// Capture if the last stone landed in an empty pit of our own
	// and the opposite pit has any stones.
	opp := Pits + 1 - land
	mine, theirs := self.lane(land), other.lane(opp)
	if mine == 1 && theirs > 0 {
		*self -= Side(uint64(mine) << (8 * land))
		*other -= Side(uint64(theirs) << (8 * opp))
		*self += Side(uint64(mine + theirs))
	}

	return false
}

// Legal returns true if PIT may be sown
func (s Side) Legal(pit uint) bool {
	return pit >= 1 && pit <= Pits && s.lane(pit) > 0
}
