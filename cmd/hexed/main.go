// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command hexed is a terminal-based modal hex editor in the
// Kakoune/vi lineage. Its editing core lives in the rope, delta,
// selection, history, ops, buffer, modes and workspace packages; this
// command is the thin terminal frontend wiring raw key bytes and a
// hex dump in and out of that core.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"cloudeng.io/hexed/algo/container/circular"
	"cloudeng.io/hexed/cmdutil"
	"cloudeng.io/hexed/cmdutil/flags"
	"cloudeng.io/hexed/cmdutil/subcmd"
	"cloudeng.io/hexed/config"
	"cloudeng.io/hexed/logging/ctxlog"
	"cloudeng.io/hexed/modes"
	"cloudeng.io/hexed/workspace"
)

type editFlags struct {
	cmdutil.LoggingFlags
	Config       string       `subcmd:"config,,path to a yaml config file; defaults to ~/.hexedrc if present"`
	BytesPerLine int          `subcmd:"bytes-per-line,16,number of bytes shown per hex dump line"`
	Remap        flags.Commas `subcmd:"remap,,comma separated from=to single-rune overrides applied on top of the config file's remap table, e.g. j=n,k=e"`
}

func main() {
	ctx, cancel := cmdutil.HandleInterrupt(context.Background())
	defer cancel(nil)

	fs := subcmd.MustRegisterFlagStruct(&editFlags{}, nil, nil)
	cmd := subcmd.NewCommand("hexed", fs, runEditor, subcmd.OptionalSingleArgument())
	cmd.Document("open path in the hex editor, or start with an empty scratch buffer")
	cmds := subcmd.NewCommandSet(cmd)
	cmds.TopLevel(cmd)
	if err := cmds.Dispatch(ctx); err != nil {
		cmdutil.Exit("%v", err)
	}
}

func runEditor(ctx context.Context, values interface{}, args []string) error {
	ef := values.(*editFlags)

	if err := flags.OneOf(ef.LoggingFlags.Format).Validate("text", "json", ""); err != nil {
		return fmt.Errorf("log-format: %w", err)
	}

	logger, err := ef.LoggingConfig().NewLogger()
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logger.Close()
	logger.LogBuildInfo()
	ctx = ctxlog.WithLogger(ctx, logger.Logger)

	cfgPath := ef.Config
	if cfgPath == "" {
		if p := config.DefaultPath(); p != "" {
			if _, statErr := os.Stat(p); statErr == nil {
				cfgPath = p
			}
		}
	}
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}
	remap := config.NewRemapper(cfg)
	if err := remap.AddOverrides(ef.Remap.Values); err != nil {
		return err
	}
	bytesPerLine := config.BytesPerLine(cfg, ef.BytesPerLine)

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	ws := workspace.New(osFileIO{}, bytesPerLine, path)
	cmds := workspace.DefaultCommands()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("hexed: stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		cmdutil.Exit("hexed: failed to set raw terminal mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	return runLoop(ctx, ws, cmds, remap)
}

// runLoop reads raw terminal bytes and decodes them into Events faster
// than the core can necessarily consume them (a single read(2) can
// return several keystrokes queued up while a prior transition was
// still running); queue buffers them between reads so HandleEvent
// always sees one event at a time, per §5's cooperative single-event
// loop.
func runLoop(ctx context.Context, ws *workspace.Workspace, cmds *workspace.CommandSet, remap *config.Remapper) error {
	buf := make([]byte, 256)
	queue := circular.NewBuffer[modes.Event](16)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		render(os.Stdout, ws, &ws.View)
		if queue.Len() == 0 {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return err
			}
			pending := buf[:n]
			var evs []modes.Event
			for len(pending) > 0 {
				ev, consumed := decodeKey(pending)
				if consumed == 0 {
					break
				}
				pending = pending[consumed:]
				evs = append(evs, remap.Apply(ev))
			}
			queue.Append(evs)
		}
		for _, ev := range queue.Head(1) {
			_, _, quit := ws.HandleEvent(ctx, cmds, ev)
			if quit {
				return nil
			}
		}
	}
}
