// Game Orchestration
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

package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-rockhop"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Journal records games as they are played
type Journal interface {
	SaveGame(context.Context, *rockhop.Game) error
	SaveMove(context.Context, *rockhop.Move) error
}

// Move applies M to G, if it is legal
func Move(g *rockhop.Game, m *rockhop.Move) bool {
	if m.Agent != nil && g.South != nil && g.North != nil &&
		g.Current() != g.Side(m.Agent) {
		panic("Unexpected side")
	}
	return g.MakeMove(m.Choice)
}

// MoveCopy applies M to a copy of G
func MoveCopy(g *rockhop.Game, m *rockhop.Move) (*rockhop.Game, bool) {
	c := g.Copy()
	return c, Move(c, m)
}

// Play lets the agents of G move until the game is over.  If J is
// not nil, the game and every move are recorded.
func Play(ctx context.Context, g *rockhop.Game, j Journal) (err error) {
	dbg := rockhop.Debug.Debug

	if j != nil {
		if err = j.SaveGame(ctx, g); err != nil {
			return err
		}
	}

	g.Outcome = rockhop.ONGOING
	for !g.Over() {
		var m *rockhop.Move

		if err = ctx.Err(); err != nil {
			return err
		}

		moves := g.Moves()
		dbg().Int64("game", g.Id).Stringer("position", g.Position).
			Uint("moves", moves.Count()).Msg("Requesting move")
		switch moves.Count() {
		case 0:
			// If this happens, then Position.Over or
			// Position.Moves must be broken.
			panic("No moves even though game is not over")
		case 1:
			// Skip trivial moves
			m = &rockhop.Move{
				Agent:   g.Active(),
				Comment: "[Auto-move]",
				Choice:  moves.Last(),
				State:   g.Position,
				Game:    g,
				Stamp:   time.Now(),
			}
		default:
			var resign bool
			m, resign = g.Active().Request(g)
			if resign {
				dbg().Int64("game", g.Id).Stringer("player", g.Current()).
					Msg("Resigned")
				g.Outcome = rockhop.RESIGN
				goto save
			}
		}
		dbg().Int64("game", g.Id).Uint("move", m.Choice).
			Str("comment", m.Comment).Msg("Made move")

		if !Move(g, m) {
			dbg().Int64("game", g.Id).Stringer("player", g.Current()).
				Uint("move", m.Choice).Msg("Illegal move")
			g.Outcome = rockhop.RESIGN
			goto save
		}

		if j != nil {
			if err = j.SaveMove(ctx, m); err != nil {
				return err
			}
		}
	}

	g.Outcome = g.Position.Outcome()
save:
	dbg().Int64("game", g.Id).Stringer("outcome", g.Outcome).Msg("Game finished")
	if j != nil {
		err = j.SaveGame(ctx, g)
	}
	return err
}

// Tally counts the results of a match for one agent
type Tally struct{ Win, Draw, Loss uint }

func (t Tally) String() string {
	return fmt.Sprintf("+%d =%d -%d", t.Win, t.Draw, t.Loss)
}

// Match plays N games between the agents made by A and B, at most
// WORKERS at a time.  The agents alternate who moves first.  The
// result is reported from the perspective of A.
func Match(ctx context.Context, n, workers int, a, b func() rockhop.Agent, j Journal) (Tally, error) {
	var (
		lock  sync.Mutex
		tally Tally
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i := 0; i < n; i++ {
		first := i%2 == 0
		eg.Go(func() error {
			x, y := a(), b()

			g := rockhop.NewGame()
			g.South = lo.Ternary(first, x, y)
			g.North = lo.Ternary(first, y, x)
			if err := Play(ctx, g, j); err != nil {
				return err
			}

			// The outcome is recorded for the south player,
			// and a resignation is always by the active one.
			out := g.Outcome
			if out == rockhop.RESIGN {
				out = lo.Ternary(g.Current() == rockhop.South,
					rockhop.LOSS, rockhop.WIN)
			}
			if !first {
				out = out.Invert()
			}

			lock.Lock()
			defer lock.Unlock()
			switch out {
			case rockhop.WIN:
				tally.Win++
			case rockhop.DRAW:
				tally.Draw++
			case rockhop.LOSS:
				tally.Loss++
			}
			return nil
		})
	}

	err := eg.Wait()
	return tally, err
}
