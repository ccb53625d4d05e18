// Game Journal
//
// Copyright (c) 2021, 2022, 2023, 2024  Philip Kaludercic
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
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-rockhop"
	"go-rockhop/game"
)

//go:embed *.sql
var sql_dir embed.FS

// ErrUnknownGame is returned when querying a game that was never saved
var ErrUnknownGame = errors.New("unknown game")

// DB is a journal of played games
type DB struct {
	// The database connections
	read  *sql.DB
	write *sql.DB

	// The SQL queries are stored next to this file, and they are
	// loaded when opening the journal.  QUERIES are the commands
	// handled by READ, and COMMANDS are the queries handled by
	// WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt
}

// player stands in for an agent that is only known by name
type player string

func (p player) Request(*rockhop.Game) (*rockhop.Move, bool) {
	panic("Cannot request a move from a journal entry")
}

func (p player) String() string { return string(p) }

func name(a rockhop.Agent) string {
	if a == nil {
		return "human"
	}
	return a.String()
}

// SaveGame inserts GAME into the journal, or updates its state if it
// has already been saved.
func (db *DB) SaveGame(ctx context.Context, game *rockhop.Game) error {
	if game.Id == 0 {
		rockhop.Debug.Debug().
			Str("south", name(game.South)).
			Str("north", name(game.North)).
			Msg("Saving new game")
		res, err := db.commands["insert-game"].ExecContext(ctx,
			name(game.South), name(game.North),
			game.Start.String(), game.Position.String(),
			game.Outcome, game.Started.UTC())
		if err != nil {
			return fmt.Errorf("saving game: %w", err)
		}

		game.Id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("saving game: %w", err)
		}
		return nil
	}

	_, err := db.commands["update-game"].ExecContext(ctx,
		game.Position.String(), game.Outcome, game.Id)
	if err != nil {
		return fmt.Errorf("updating game %d: %w", game.Id, err)
	}
	return nil
}

// SaveMove records MOVE and the state of the game it was made in
func (db *DB) SaveMove(ctx context.Context, move *rockhop.Move) error {
	game := move.Game
	if game.Id == 0 {
		if err := db.SaveGame(ctx, game); err != nil {
			return err
		}
	}

	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.StmtContext(ctx, db.commands["insert-move"]).ExecContext(ctx,
		game.Id,
		len(game.History),
		!move.State.PovTurn(),
		move.Choice,
		move.Comment,
		move.Stamp.UTC())
	if err != nil {
		goto fail
	}
	_, err = tx.StmtContext(ctx, db.commands["update-game"]).ExecContext(ctx,
		game.Position.String(), game.Outcome, game.Id)
	if err != nil {
		goto fail
	}

	return tx.Commit()

fail:
	if rerr := tx.Rollback(); rerr != nil {
		rockhop.Debug.Debug().Err(rerr).Msg("Rollback failed")
	}
	return fmt.Errorf("saving move for game %d: %w", game.Id, err)
}

func (db *DB) scanGame(scan func(dest ...interface{}) error) (*rockhop.Game, error) {
	var (
		g            rockhop.Game
		south, north string
		start, state string
	)

	err := scan(&g.Id, &south, &north, &start, &state, &g.Outcome, &g.Started)
	if err != nil {
		return nil, err
	}

	g.Start, err = rockhop.ParsePosition(start)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", g.Id, err)
	}
	g.Position, err = rockhop.ParsePosition(state)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", g.Id, err)
	}
	g.South, g.North = player(south), player(north)

	return &g, nil
}

// QueryGames lists the games on PAGE, the most recent first
func (db *DB) QueryGames(ctx context.Context, page int) ([]*rockhop.Game, error) {
	rows, err := db.queries["select-games"].QueryContext(ctx, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*rockhop.Game
	for rows.Next() {
		g, err := db.scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// QueryGame loads game ID and replays its moves from the start.  The
// returned game is in the position after the last recorded move.
func (db *DB) QueryGame(ctx context.Context, id int64) (*rockhop.Game, []*rockhop.Move, error) {
	row := db.queries["select-game"].QueryRowContext(ctx, id)
	saved, err := db.scanGame(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownGame, id)
	} else if err != nil {
		return nil, nil, err
	}

	rows, err := db.queries["select-moves"].QueryContext(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	g := rockhop.NewGameFrom(saved.Start)
	g.Id, g.South, g.North = saved.Id, saved.South, saved.North
	g.Started = saved.Started

	var moves []*rockhop.Move
	for rows.Next() {
		var (
			m    = &rockhop.Move{State: g.Position}
			side bool
		)
		err = rows.Scan(&side, &m.Choice, &m.Comment, &m.Stamp)
		if err != nil {
			return nil, nil, err
		}

		next, ok := game.MoveCopy(g, m)
		if !ok {
			return nil, nil, fmt.Errorf("game %d: illegal move %d on %s",
				id, m.Choice, g.Position)
		}
		m.Agent = g.Player(rockhop.Player(side))
		m.Game = next
		g = next
		moves = append(moves, m)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	g.Outcome = saved.Outcome
	return g, moves, nil
}

// Close optimises and closes the journal
func (db *DB) Close() error {
	// https://www.sqlite.org/pragma.html#pragma_optimize
	_, err := db.write.Exec("PRAGMA optimize;")
	return errors.Join(err, db.write.Close(), db.read.Close())
}

// Open the journal in FILE, creating it if necessary
func Open(file string) (*DB, error) {
	read, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &DB{
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		rockhop.Debug.Debug().Str("pragma", pragma).Msg("Run PRAGMA")
		_, err = db.write.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	// Tables have to exist before statements using them can be
	// prepared.
	for _, entry := range entries {
		base := path.Base(entry.Name())
		if !strings.HasPrefix(base, "create-") {
			continue
		}
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
		if _, err = db.write.Exec(string(data)); err != nil {
			return nil, errors.Join(fmt.Errorf("%s: %w", base, err), db.Close())
		}
		rockhop.Debug.Debug().Str("file", base).Msg("Executed query")
	}

	for _, entry := range entries {
		base := path.Base(entry.Name())
		if strings.HasPrefix(base, "create-") {
			continue
		}
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}

		query := strings.TrimSuffix(base, ".sql")
		if strings.HasPrefix(query, "select-") {
			db.queries[query], err = db.read.Prepare(string(data))
			rockhop.Debug.Debug().Str("query", query).Msg("Registered query")
		} else {
			db.commands[query], err = db.write.Prepare(string(data))
			rockhop.Debug.Debug().Str("command", query).Msg("Registered command")
		}
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%s: %w", base, err), db.Close())
		}
	}

	if len(db.queries) == 0 {
		panic("No queries loaded")
	}

	return db, nil
}

var _ game.Journal = (*DB)(nil)

// Prune deletes all games that started before T
func (db *DB) Prune(ctx context.Context, t time.Time) (int64, error) {
	res, err := db.commands["delete-games"].ExecContext(ctx, t.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
