// Game Journal Tests
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

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go-rockhop"
	"go-rockhop/bot"
	"go-rockhop/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	return db
}

func TestSaveAndReplay(t *testing.T) {
	var (
		db  = open(t)
		ctx = context.Background()
	)

	g := rockhop.NewGame()
	g.South, g.North = bot.MakeMinMax(2, rockhop.DefaultWeights), bot.MakeRandom()
	require.NoError(t, game.Play(ctx, g, db))
	require.NotZero(t, g.Id)

	games, err := db.QueryGames(ctx, 0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, g.Id, games[0].Id)
	assert.Equal(t, "MM2", games[0].South.String())
	assert.Equal(t, "random", games[0].North.String())
	assert.Equal(t, g.Position, games[0].Position)
	assert.Equal(t, g.Outcome, games[0].Outcome)
	assert.WithinDuration(t, g.Started, games[0].Started, time.Second)

	replay, moves, err := db.QueryGame(ctx, g.Id)
	require.NoError(t, err)
	assert.Equal(t, g.Position, replay.Position)
	assert.Equal(t, g.History, replay.History)
	assert.Equal(t, g.Outcome, replay.Outcome)
	require.Len(t, moves, len(g.History))

	state := rockhop.MakePosition()
	for i, m := range moves {
		assert.Equal(t, g.History[i], m.Choice)
		assert.Equal(t, state, m.State)

		// The agent is recovered from the side that moved
		if state.PovTurn() {
			assert.Equal(t, "MM2", m.Agent.String())
		} else {
			assert.Equal(t, "random", m.Agent.String())
		}
		state.Play(m.Choice)
	}
}

func TestUnknownGame(t *testing.T) {
	db := open(t)

	_, _, err := db.QueryGame(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestSaveFromPosition(t *testing.T) {
	var (
		db  = open(t)
		ctx = context.Background()
	)

	p, err := rockhop.ParsePosition("<6,10,15,1,0,0,0,0,2,0,0,0,0,20,0>")
	require.NoError(t, err)

	g := rockhop.NewGameFrom(p)
	require.NoError(t, db.SaveGame(ctx, g))
	require.True(t, g.MakeMove(1))
	require.NoError(t, db.SaveMove(ctx, &rockhop.Move{
		Choice: 1,
		State:  p,
		Game:   g,
		Stamp:  time.Now(),
	}))

	replay, moves, err := db.QueryGame(ctx, g.Id)
	require.NoError(t, err)
	assert.Equal(t, p, replay.Start)
	assert.Equal(t, g.Position, replay.Position)
	assert.Len(t, moves, 1)
	assert.Equal(t, "human", replay.South.String())
}

func TestMatchJournal(t *testing.T) {
	var (
		db  = open(t)
		ctx = context.Background()
	)

	tally, err := game.Match(ctx, 4, 2, bot.MakeRandom, bot.MakeRandom, db)
	require.NoError(t, err)
	assert.Equal(t, uint(4), tally.Win+tally.Draw+tally.Loss)

	games, err := db.QueryGames(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, games, 4)
	for _, g := range games {
		assert.NotEqual(t, rockhop.ONGOING, g.Outcome)
	}

	// Nothing is older than now, so nothing is pruned...
	n, err := db.Prune(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	// ...but everything is older than the future.
	n, err = db.Prune(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	games, err = db.QueryGames(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, games)
}
