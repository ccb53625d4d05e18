// Command Line Interface
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
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go-rockhop"
	"go-rockhop/bot"
	"go-rockhop/conf"
	"go-rockhop/db"
	"go-rockhop/game"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
	"github.com/samber/lo"
)

var (
	// ErrNoJournal is returned by commands that need a journal
	// when none was configured.
	ErrNoJournal = errors.New("no journal has been configured")

	errUnknownCommand = errors.New("unknown command")
)

// Shell holds the state of an interactive session
type Shell struct {
	game    *rockhop.Game
	conf    *conf.Conf
	journal *db.DB // may be nil
	out     *termenv.Output
	open    bool
}

// New creates a shell writing to OUT.  The journal J is optional.
func New(c *conf.Conf, j *db.DB, out io.Writer) *Shell {
	var opts []termenv.OutputOption
	if !c.Shell.Color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	return &Shell{
		game:    rockhop.NewGame(),
		conf:    c,
		journal: j,
		out:     termenv.NewOutput(out, opts...),
		open:    true,
	}
}

// Open is true until the session has been ended
func (s *Shell) Open() bool { return s.open }

// Game returns the game the shell is playing
func (s *Shell) Game() *rockhop.Game { return s.game }

func (s *Shell) println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

// Execute tokenizes and runs a single command line
func (s *Shell) Execute(line string) error {
	toks, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}

	cmd, ok := lookup(toks[0])
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, toks[0])
	}
	rockhop.Debug.Debug().Str("command", cmd.names[0]).Strs("args", toks[1:]).Msg("Executing")
	return cmd.run(s, toks[1:])
}

// Run reads and executes commands until the session is closed
func (s *Shell) Run() error {
	items := lo.FlatMap(commands, func(c command, _ int) []readline.PrefixCompleterInterface {
		return lo.Map(c.names, func(n string, _ int) readline.PrefixCompleterInterface {
			return readline.PcItem(n)
		})
	})

	l, err := readline.NewEx(&readline.Config{
		Prompt:          s.conf.Shell.Prompt,
		HistoryFile:     s.conf.Shell.History,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		EOFPrompt:       "quit",
		InterruptPrompt: "^C",

		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	for s.open {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		if err := s.Execute(line); err != nil {
			s.println(err)
		}
		s.println()
	}

	return nil
}

// parseArgs reads "key value" pairs from ARGS into the matching
// integers of INTO.
func parseArgs(args []string, into map[string]*int) error {
	for i := 0; i < len(args); i++ {
		ptr, ok := into[args[i]]
		if !ok {
			return fmt.Errorf("unknown argument %q", args[i])
		}
		if i+1 >= len(args) {
			return fmt.Errorf("expected unsigned integer for %s", args[i])
		}
		i++
		n, err := strconv.ParseUint(args[i], 10, 31)
		if err != nil {
			return fmt.Errorf("expected unsigned integer for %s, found %q",
				args[i-1], args[i])
		}
		*ptr = int(n)
	}
	return nil
}

func quit(s *Shell, _ []string) error {
	s.open = false
	return nil
}

func help(s *Shell, args []string) error {
	if len(args) == 0 {
		args = lo.Map(commands, func(c command, _ int) string { return c.names[0] })
	}

	for _, name := range args {
		cmd, ok := lookup(name)
		if !ok {
			s.printf("Unknown command %q, ignoring.\n", name)
			continue
		}
		s.printf("%s: %s\n", strings.Join(cmd.names, ", "), cmd.usage)
		for _, line := range strings.Split(cmd.help, "\n") {
			s.printf("  %s\n", line)
		}
	}
	return nil
}

func move(s *Shell, args []string) error {
	result := s.game.Copy()

	for i, tok := range args {
		pit, err := strconv.ParseUint(tok, 10, 64)
		switch {
		case err != nil:
			return fmt.Errorf("token #%d %q is not a move, game state unchanged", i+1, tok)
		case pit < 1 || pit > rockhop.Pits:
			return fmt.Errorf("token #%d %q is not within the range [1,%d], game state unchanged",
				i+1, tok, rockhop.Pits)
		case !result.MakeMove(uint(pit)):
			return fmt.Errorf("move #%d (%d) was not legal, game state unchanged", i+1, pit)
		}
	}

	// All moves worked, so the game state can be updated
	s.game = result
	return nil
}

func display(s *Shell, _ []string) error {
	Display(s.out, s.game.Position)
	return nil
}

func position(s *Shell, args []string) error {
	if len(args) == 0 {
		return errors.New("expected \"startpos\" or a position")
	}

	if args[0] == "startpos" {
		s.game = rockhop.NewGame()
		return nil
	}

	p, err := rockhop.ParsePosition(strings.Join(args, ""))
	if err != nil {
		return fmt.Errorf("%w, game state unchanged", err)
	}
	s.game = rockhop.NewGameFrom(p)
	return nil
}

func goCmd(s *Shell, args []string) error {
	var (
		depth = s.conf.Search.Depth
		play  = 1
	)
	err := parseArgs(args, map[string]*int{"depth": &depth, "play": &play})
	if err != nil {
		return err
	}

	for i := 0; i < play; i++ {
		// Stop early if the game ends
		if s.game.Over() {
			s.println("Game ended. Ending search.")
			break
		}

		s.printf("Thinking with depth %d...\n", depth)
		pit, _ := bot.FindBestMove(s.game.Position, depth, s.conf.Eval)
		s.printf("Playing move %d.\n", pit)
		if !s.game.MakeMove(pit) {
			panic(fmt.Sprintf("Search proposed illegal move %d given %s",
				pit, s.game.Position))
		}
	}
	if s.game.Over() {
		s.printf("Game over: %s for %s.\n", s.game.Outcome, rockhop.South)
	}
	return nil
}

func eval(s *Shell, args []string) error {
	depth := s.conf.Search.Depth
	if err := parseArgs(args, map[string]*int{"depth": &depth}); err != nil {
		return err
	}

	if s.game.Over() {
		s.printf("Game ended: %s for %s.\n", s.game.Outcome, rockhop.South)
		s.printf("Evaluation:  %d\n", s.game.Eval(s.conf.Eval))
		return nil
	}

	s.printf("Evaluating with depth %d...\n", depth)
	pit, ev := bot.FindBestMove(s.game.Position, depth, s.conf.Eval)
	s.printf("Best move:   %d\n", pit)
	s.printf("Evaluation:  %d\n", ev)
	return nil
}

func match(s *Shell, args []string) error {
	var (
		games = s.conf.Match.Games
		south = s.conf.Search.Depth
		north = s.conf.Search.Depth
	)
	err := parseArgs(args, map[string]*int{
		"games": &games,
		"south": &south,
		"north": &north,
	})
	if err != nil {
		return err
	}

	var j game.Journal
	if s.journal != nil {
		j = s.journal
	}

	s.printf("Playing %d games, depth %d against depth %d...\n", games, south, north)
	start := time.Now()
	tally, err := game.Match(context.Background(), games, s.conf.Match.Workers,
		func() rockhop.Agent { return bot.MakeMinMax(south, s.conf.Eval) },
		func() rockhop.Agent { return bot.MakeMinMax(north, s.conf.Eval) },
		j)
	if err != nil {
		return err
	}
	rockhop.Debug.Info().Dur("took", time.Since(start)).Int("games", games).Msg("Match finished")
	s.printf("Result for depth %d: %s\n", south, tally)
	return nil
}

func history(s *Shell, args []string) error {
	if s.journal == nil {
		return ErrNoJournal
	}
	ctx := context.Background()

	switch {
	case len(args) == 2 && args[0] == "show":
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("expected a game id, found %q", args[1])
		}
		g, moves, err := s.journal.QueryGame(ctx, id)
		if err != nil {
			return err
		}
		s.printf("Game %d: %s vs. %s (%s)\n", g.Id, g.South, g.North, g.Outcome)
		for i, m := range moves {
			s.printf("%3d. %-8s %d %s\n", i+1, m.Agent, m.Choice, m.Comment)
		}
		Display(s.out, g.Position)
		return nil
	case len(args) == 2 && args[0] == "prune":
		days, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("expected a number of days, found %q", args[1])
		}
		n, err := s.journal.Prune(ctx, time.Now().AddDate(0, 0, -int(days)))
		if err != nil {
			return err
		}
		s.printf("Deleted %d games.\n", n)
		return nil
	}

	page := 0
	if err := parseArgs(args, map[string]*int{"page": &page}); err != nil {
		return err
	}
	games, err := s.journal.QueryGames(ctx, page)
	if err != nil {
		return err
	}
	for _, g := range games {
		s.printf("%5d  %s  %-8s %-8s %-7s %s\n", g.Id,
			g.Started.Local().Format(time.DateTime),
			g.South, g.North, g.Outcome, g.Position)
	}
	return nil
}
