// Shell Commands
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

import "github.com/samber/lo"

type command struct {
	names []string
	usage string
	help  string
	run   func(*Shell, []string) error
}

var commands []command

// The table is filled in by init, as HELP refers back to it.
func init() {
	commands = []command{
		{
			names: []string{"quit", "q"},
			usage: "quit",
			help:  "End the session.",
			run:   quit,
		},
		{
			names: []string{"help", "h"},
			usage: "help [command...]",
			help:  "Describe the given commands, or all of them.",
			run:   help,
		},
		{
			names: []string{"move", "m"},
			usage: "move <pit...>",
			help: "Play each pit in order for the side to move.\n" +
				"If any move is illegal, none are played.",
			run: move,
		},
		{
			names: []string{"display", "d"},
			usage: "display",
			help:  "Show the current board.",
			run:   display,
		},
		{
			names: []string{"position", "pos", "p"},
			usage: "position startpos | position <6,s,n,p1,...,p6,o1,...,o6>[*]",
			help: "Start a new game from the initial or the given position.\n" +
				"A trailing asterisk means the opponent is to move.",
			run: position,
		},
		{
			names: []string{"go"},
			usage: "go [depth N] [play N]",
			help: "Search for the best move and play it, repeated N times\n" +
				"or until the game ends.",
			run: goCmd,
		},
		{
			names: []string{"eval", "e"},
			usage: "eval [depth N]",
			help:  "Search for the best move without playing it.",
			run:   eval,
		},
		{
			names: []string{"match"},
			usage: "match [games N] [south D] [north D]",
			help: "Let two searches of the given depths play against\n" +
				"each other, taking turns who moves first.",
			run: match,
		},
		{
			names: []string{"history"},
			usage: "history [page N] | history show <id> | history prune <days>",
			help: "List the games in the journal, replay one of them or\n" +
				"delete those older than the given number of days.",
			run: history,
		},
	}
}

func lookup(name string) (command, bool) {
	return lo.Find(commands, func(c command) bool {
		return lo.Contains(c.names, name)
	})
}
