/*
DESCRIPTION
  Subdump is a command-line front-end for the subtitle package: it loads
  a PGS (.sup) or VobSub (.idx/.sub) track, lists its timestamps, and can
  render one entry to a raw RGBA dump for inspection.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package subdump is a bare bones program for inspecting PGS and VobSub
// subtitle tracks from the command line.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/subtitle"
)

// Logging related constants, matching cmd/looper's conventions.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	pgsPath := flag.String("pgs", "", "Path to a PGS .sup file.")
	idxPath := flag.String("idx", "", "Path to a VobSub .idx file (requires -sub).")
	subPath := flag.String("sub", "", "Path to a VobSub .sub file.")
	at := flag.Float64("at", -1, "Seconds to render a frame at, printing its geometry. -1 lists timestamps only.")
	outPath := flag.String("out", "", "If set with -at, write the rendered frame's raw RGBA bytes here.")
	logPath := flag.String("log", "", "If set, also log to this file via lumberjack.")
	flag.Parse()

	w := io.Writer(os.Stderr)
	if *logPath != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		})
	}
	log := logging.New(logVerbosity, w, logSuppress)

	d := subtitle.NewDecoder(subtitle.WithLogger(log))

	switch {
	case *pgsPath != "":
		buf, err := os.ReadFile(*pgsPath)
		if err != nil {
			log.Fatal("could not read PGS file", "error", err)
		}
		if _, err := d.LoadPGS(buf); err != nil {
			log.Fatal("could not load PGS stream", "error", err)
		}
	case *idxPath != "" && *subPath != "":
		idxBytes, err := os.ReadFile(*idxPath)
		if err != nil {
			log.Fatal("could not read IDX file", "error", err)
		}
		subBytes, err := os.ReadFile(*subPath)
		if err != nil {
			log.Fatal("could not read SUB file", "error", err)
		}
		if _, err := d.LoadVobSub(string(idxBytes), subBytes); err != nil {
			log.Fatal("could not load VobSub track", "error", err)
		}
	case *subPath != "":
		subBytes, err := os.ReadFile(*subPath)
		if err != nil {
			log.Fatal("could not read SUB file", "error", err)
		}
		if _, err := d.LoadVobSubOnly(subBytes); err != nil {
			log.Fatal("could not load VobSub track", "error", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "one of -pgs, -idx/-sub, or -sub must be given")
		flag.Usage()
		os.Exit(2)
	}

	fmt.Printf("format: %s, count: %d\n", d.Format(), d.Count())
	if *at < 0 {
		for i, ts := range d.GetTimestamps() {
			fmt.Printf("  [%d] %.3fs\n", i, ts/1000)
		}
		return
	}

	frame, ok := d.RenderAtTimestamp(*at)
	if !ok {
		log.Fatal("no subtitle visible at the requested time", "seconds", *at)
	}
	fmt.Printf("screen: %dx%d\n", frame.ScreenWidth, frame.ScreenHeight)
	for i, c := range frame.Compositions {
		fmt.Printf("  composition[%d]: (%d,%d) %dx%d\n", i, c.X, c.Y, c.Width, c.Height)
	}

	if *outPath != "" && len(frame.Compositions) > 0 {
		if err := os.WriteFile(*outPath, frame.Compositions[0].RGBA, 0o644); err != nil {
			log.Fatal("could not write RGBA dump", "error", err)
		}
	}
}
