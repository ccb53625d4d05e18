// Configuration
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

package conf

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	"go-rockhop"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defconf = "rockhop.toml"

func init() {
	def := &defaultConfig

	flag.IntVar(&def.Search.Depth, "depth", def.Search.Depth,
		"Plies to search by default")
	flag.Int64Var(&def.Eval.Mancala, "weight-mancala", def.Eval.Mancala,
		"Evaluation weight of a stone in a mancala")
	flag.Int64Var(&def.Eval.Pit, "weight-pit", def.Eval.Pit,
		"Evaluation weight of a stone in a pit")

	flag.StringVar(&def.Journal.File, "journal", def.Journal.File,
		"File to record played games in")

	flag.StringVar(&def.Shell.History, "history", def.Shell.History,
		"File to store the command history in")
	flag.BoolVar(&def.Shell.Color, "color", def.Shell.Color,
		"Colour the board display")

	flag.IntVar(&def.Match.Workers, "workers", def.Match.Workers,
		"Number of games to play at once in a match")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable informational output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type SearchConf struct {
	Depth int `toml:"depth"`
}

type JournalConf struct {
	File string `toml:"file,omitempty"`
}

type ShellConf struct {
	Prompt  string `toml:"prompt"`
	History string `toml:"history,omitempty"`
	Color   bool   `toml:"color"`
}

type MatchConf struct {
	Games   int `toml:"games"`
	Workers int `toml:"workers"`
}

// Conf is the configuration of a session
type Conf struct {
	Search  SearchConf      `toml:"search"`
	Eval    rockhop.Weights `toml:"eval"`
	Journal JournalConf     `toml:"journal"`
	Shell   ShellConf       `toml:"shell"`
	Match   MatchConf       `toml:"match"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Search: SearchConf{
		Depth: 14,
	},
	Eval: rockhop.DefaultWeights,
	Shell: ShellConf{
		Prompt: "rockhop> ",
		Color:  true,
	},
	Match: MatchConf{
		Games:   10,
		Workers: runtime.NumCPU()/2 + 1,
	},
}

var (
	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
)

// Default returns a copy of the default configuration
func Default() *Conf {
	c := defaultConfig
	return &c
}

// Decode parses a configuration from R on top of the defaults
func Decode(r io.Reader) (*Conf, error) {
	c := defaultConfig
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return &c, c.Check()
}

// Check validates the values of a configuration
func (c *Conf) Check() error {
	switch {
	case c.Search.Depth < 1:
		return fmt.Errorf("search depth must be positive, not %d", c.Search.Depth)
	case c.Match.Games < 0:
		return fmt.Errorf("number of games must not be negative, not %d", c.Match.Games)
	case c.Eval.Mancala < c.Eval.Pit:
		log.Warn().
			Int64("mancala", c.Eval.Mancala).
			Int64("pit", c.Eval.Pit).
			Msg("Stones in a pit are weighed more than banked stones")
	}
	return nil
}

// Load reads the configuration file, if there is one, sets up
// logging and handles the -dump-config flag.
func Load() (c *Conf) {
	file, err := os.Open(cfile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cfile != defconf {
			log.Fatal().Err(err).Msg("Failed to open configuration")
		}
		c = Default()
	} else {
		defer file.Close()
		c, err = Decode(file)
		if err != nil {
			log.Error().Err(err).Str("file", cfile).Msg("Using default configuration")
			c = Default()
		}
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		rockhop.Debug = zerolog.New(output).With().Timestamp().Caller().Logger()
		rockhop.Debug.Debug().Msg("Debug logging has been enabled")
	case silent:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	// Dump the configuration onto the disk if requested
	if dump {
		err = c.Dump(os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to dump configuration")
		}
		os.Exit(0)
	}

	return c
}

// Dump serialises the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
