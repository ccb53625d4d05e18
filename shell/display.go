// Board Display
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

package shell

import (
	"fmt"
	"strings"

	"go-rockhop"

	"github.com/muesli/termenv"
)

const rule = "------------------------"

// Display draws P onto OUT.  The point of view is at the bottom,
// sowing from left to right into the mancala on the right, and the
// opponent is at the top, sowing from right to left.  The side to
// move is highlighted.
func Display(out *termenv.Output, p rockhop.Position) {
	row := func(s rockhop.Side, pits []uint, active bool) string {
		var cells []string
		for _, i := range pits {
			cell := out.String(fmt.Sprintf("%02d", s.Pit(i)))
			if active {
				cell = cell.Bold().Foreground(out.Color("2"))
			}
			cells = append(cells, cell.String())
		}
		return "   " + strings.Join(cells, " ")
	}

	var (
		up   = []uint{6, 5, 4, 3, 2, 1}
		down = []uint{1, 2, 3, 4, 5, 6}
		turn = "^"
	)
	if p.PovTurn() {
		turn = "v"
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "    6  5  4  3  2  1")
	fmt.Fprintln(out, row(p.Opp, up, !p.PovTurn()))
	fmt.Fprintf(out, "%02d                   %02d  %sTURN%s\n",
		p.Opp.Mancala(), p.Pov.Mancala(), turn, turn)
	fmt.Fprintln(out, row(p.Pov, down, p.PovTurn()))
	fmt.Fprintln(out, "    1  2  3  4  5  6")
	fmt.Fprintln(out, rule)
}
