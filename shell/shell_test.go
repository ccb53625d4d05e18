// Command Line Interface Tests
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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"go-rockhop"
	"go-rockhop/conf"
	"go-rockhop/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(t *testing.T, j *db.DB) (*Shell, *bytes.Buffer) {
	t.Helper()

	c := conf.Default()
	c.Shell.Color = false
	c.Search.Depth = 2
	c.Match.Games = 2
	c.Match.Workers = 2

	var buf bytes.Buffer
	return New(c, j, &buf), &buf
}

func TestMove(t *testing.T) {
	s, _ := session(t, nil)

	require.NoError(t, s.Execute("move 3 1"))
	assert.Equal(t, []uint{3, 1}, s.Game().History)
	assert.Equal(t, rockhop.North, s.Game().Current())

	require.NoError(t, s.Execute("m 6"))
	assert.Equal(t, rockhop.South, s.Game().Current())
}

func TestMoveUnchanged(t *testing.T) {
	for _, line := range []string{
		"move 1 x",
		"move 1 0",
		"move 1 7",
		"move 1 -2",
		"move 1 1 1", // South's pit 1 is empty again
	} {
		s, _ := session(t, nil)
		before := s.Game().Position

		assert.Error(t, s.Execute(line), line)
		assert.Equal(t, before, s.Game().Position, line)
		assert.Empty(t, s.Game().History, line)
	}
}

func TestDisplay(t *testing.T) {
	s, buf := session(t, nil)

	require.NoError(t, s.Execute("display"))
	assert.Equal(t, strings.Join([]string{
		rule,
		"    6  5  4  3  2  1",
		"   04 04 04 04 04 04",
		"00                   00  vTURNv",
		"   04 04 04 04 04 04",
		"    1  2  3  4  5  6",
		rule,
		"",
	}, "\n"), buf.String())

	buf.Reset()
	require.NoError(t, s.Execute("m 1"))
	require.NoError(t, s.Execute("d"))
	assert.Contains(t, buf.String(), "   00 05 05 05 05 04\n")
	assert.Contains(t, buf.String(), "^TURN^")
}

func TestPosition(t *testing.T) {
	s, _ := session(t, nil)

	const state = "<6,10,15,1,0,0,0,0,2,0,0,0,0,20,0>"
	require.NoError(t, s.Execute("position "+state))
	assert.Equal(t, state, s.Game().Position.String())

	// Spaces are tolerated, when quoted or not
	require.NoError(t, s.Execute(`p "< 6, 0, 0, 4,4,4,4,4,4, 4,4,4,4,4,4 > *"`))
	assert.Equal(t, rockhop.North, s.Game().Current())
	require.NoError(t, s.Execute("pos <6,0,0, 4,4,4,4,4,4, 4,4,4,4,4,4>"))
	assert.Equal(t, rockhop.South, s.Game().Current())

	require.NoError(t, s.Execute("m 1"))
	require.NoError(t, s.Execute("position startpos"))
	assert.Equal(t, rockhop.MakePosition(), s.Game().Position)
	assert.Empty(t, s.Game().History)

	assert.ErrorIs(t, s.Execute("position <6,1,2,3>"), rockhop.ErrInvalidPosition)
	assert.Error(t, s.Execute("position"))
}

func TestEval(t *testing.T) {
	s, buf := session(t, nil)

	require.NoError(t, s.Execute("eval depth 1"))
	assert.Contains(t, buf.String(), "Best move:   3\n")
	assert.Contains(t, buf.String(), "Evaluation:  45\n")
	assert.Empty(t, s.Game().History)

	assert.Error(t, s.Execute("eval depth"))
	assert.Error(t, s.Execute("eval depth deep"))
	assert.Error(t, s.Execute("eval width 3"))
}

func TestEvalFinished(t *testing.T) {
	s, buf := session(t, nil)

	require.NoError(t, s.Execute("position <6,20,0,0,0,0,0,0,0,1,1,1,1,1,23>"))
	require.NoError(t, s.Execute("eval"))
	assert.Contains(t, buf.String(), "Game ended: Loss for South.\n")
	assert.Contains(t, buf.String(), fmt.Sprintf("Evaluation:  %d\n", -rockhop.Win))
	assert.NotContains(t, buf.String(), "Best move")

	buf.Reset()
	require.NoError(t, s.Execute("display"))
	assert.Contains(t, buf.String(), "   00 00 00 00 00 00\n")
	assert.Contains(t, buf.String(), "28                   20")
}

func TestGo(t *testing.T) {
	s, buf := session(t, nil)

	require.NoError(t, s.Execute("go depth 1"))
	assert.Equal(t, []uint{3}, s.Game().History)
	assert.Contains(t, buf.String(), "Playing move 3.\n")

	require.NoError(t, s.Execute("go depth 1 play 500"))
	assert.True(t, s.Game().Over())
	assert.Contains(t, buf.String(), "Game ended. Ending search.\n")
	assert.Contains(t, buf.String(), "Game over: ")
}

func TestHelp(t *testing.T) {
	s, buf := session(t, nil)

	require.NoError(t, s.Execute("help"))
	for _, cmd := range commands {
		assert.Contains(t, buf.String(), cmd.usage)
	}

	buf.Reset()
	require.NoError(t, s.Execute("h go frobnicate"))
	assert.Contains(t, buf.String(), "go: go [depth N] [play N]")
	assert.Contains(t, buf.String(), `Unknown command "frobnicate", ignoring.`)
}

func TestQuit(t *testing.T) {
	for _, line := range []string{"quit", "q", "  q  "} {
		s, _ := session(t, nil)
		assert.True(t, s.Open())
		require.NoError(t, s.Execute(line))
		assert.False(t, s.Open())
	}
}

func TestUnknown(t *testing.T) {
	s, _ := session(t, nil)

	assert.ErrorIs(t, s.Execute("frobnicate"), errUnknownCommand)
	assert.Error(t, s.Execute(`move "1`)) // unterminated quote
	assert.NoError(t, s.Execute(""))
	assert.NoError(t, s.Execute("   "))
}

func TestNoJournal(t *testing.T) {
	s, _ := session(t, nil)

	assert.ErrorIs(t, s.Execute("history"), ErrNoJournal)
	require.NoError(t, s.Execute("match games 2 south 1 north 1"))
}

func TestHistory(t *testing.T) {
	j, err := db.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	s, buf := session(t, j)
	require.NoError(t, s.Execute("match games 2 south 1 north 2"))
	assert.Contains(t, buf.String(), "Result for depth 1: ")

	games, err := j.QueryGames(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, games, 2)

	buf.Reset()
	require.NoError(t, s.Execute("history"))
	for _, g := range games {
		assert.Contains(t, buf.String(), g.Position.String())
	}

	buf.Reset()
	require.NoError(t, s.Execute(fmt.Sprintf("history show %d", games[0].Id)))
	assert.Contains(t, buf.String(), fmt.Sprintf("Game %d: ", games[0].Id))
	assert.Contains(t, buf.String(), rule)

	assert.ErrorIs(t, s.Execute("history show 1000"), db.ErrUnknownGame)
	assert.Error(t, s.Execute("history show x"))

	buf.Reset()
	require.NoError(t, s.Execute("history prune 1"))
	assert.Contains(t, buf.String(), "Deleted 0 games.")
}
