// Copyright 2024 The pngme Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// pngme hides, reveals, and removes text messages stored in PNG chunks.
//
// Usage:
//
//	pngme [-v] encode <file> <type> <message> [output]
//	pngme [-v] decode <file> <type>
//	pngme [-v] remove <file> <type>
//	pngme [-v] print <file>
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "pngme").Logger()
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: pngme [-v] <command> [arguments]

commands:
  encode <file> <type> <message> [output]   store a message under a chunk type
  decode <file> <type>                      print the message stored under a chunk type
  remove <file> <type>                      delete the first chunk with the given type
  print <file>                              list every chunk in the file
`)
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	if err := run(logger, args[0], args[1:]); err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("pngme failed")
		os.Exit(1)
	}
}
