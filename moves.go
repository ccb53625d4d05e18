// Move Generation
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

import "math/bits"

// Moves is a set of legal pits, bit i standing for pit i
type Moves uint8

// Legal returns the set of pits SIDE may play
func Legal(s Side) (m Moves) {
	for i := uint(1); i <= Pits; i++ {
		if s.lane(i) > 0 {
			m |= 1 << i
		}
	}
	return
}

// Has returns true if PIT is a legal move
func (m Moves) Has(pit uint) bool {
	return pit >= 1 && pit <= Pits && m&(1<<pit) != 0
}

// Count returns the number of legal moves
func (m Moves) Count() uint {
	return uint(bits.OnesCount8(uint8(m)))
}

// Last returns the highest legal pit, or 0 if there is none
func (m Moves) Last() uint {
	if m == 0 {
		return 0
	}
	return uint(bits.Len8(uint8(m))) - 1
}

// Slice lists the legal pits in ascending order
func (m Moves) Slice() []uint {
	list := make([]uint, 0, Pits)
	for x := uint8(m); x != 0; x &= x - 1 {
		list = append(list, uint(bits.TrailingZeros8(x)))
	}
	return list
}
