// Entry point
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

package main

import (
	"flag"
	"fmt"
	"os"

	"go-rockhop"
	"go-rockhop/conf"
	"go-rockhop/db"
	"go-rockhop/shell"

	"github.com/rs/zerolog/log"
)

func main() {
	flag.Parse()

	// Load the configuration from disk (if available)
	config := conf.Load()

	// Enable the journal, if requested
	var journal *db.DB
	if config.Journal.File != "" {
		var err error
		journal, err = db.Open(config.Journal.File)
		if err != nil {
			log.Fatal().Err(err).Str("file", config.Journal.File).
				Msg("Failed to open journal")
		}
		defer func() {
			if err := journal.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close journal")
			}
		}()
	}

	sh := shell.New(config, journal, os.Stdout)

	// Commands passed on the command line are executed instead of
	// starting an interactive session.
	if flag.NArg() > 0 {
		for _, line := range flag.Args() {
			if err := sh.Execute(line); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			if !sh.Open() {
				break
			}
		}
		return
	}

	fmt.Printf("Rockhop v%s\n\n", rockhop.Version())
	if err := sh.Run(); err != nil {
		log.Error().Err(err).Msg("Shell terminated")
	}
}
