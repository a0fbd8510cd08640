// Copyright 2020 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package config loads the optional YAML override file described in
// SPEC_FULL.md's Configuration section: a remap of normal-mode keys
// and an override of bytes_per_line, adapting
// cmdutil.ParseYAMLConfig/YAMLErrorWithSource for source-annotated
// error messages the way cmdutil/yaml_util_test.go exercises them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloudeng.io/hexed/cmdutil"
	"cloudeng.io/hexed/modes"
)

// Config is the optional ~/.hexedrc (or -config) override file's
// shape. A zero Config changes nothing: Normal's §6 bindings and the
// default BytesPerLine stand as-is.
type Config struct {
	BytesPerLine int               `yaml:"bytes_per_line"`
	Remap        map[string]string `yaml:"remap"`
}

// DefaultPath returns ~/.hexedrc, or "" if $HOME cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexedrc")
}

// Load reads and parses path. A missing file at the default path is
// not an error: the caller should only call Load for a path it knows
// exists (an explicit -config flag) or skip the call entirely when
// DefaultPath's file is absent.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cmdutil.ParseYAMLConfigFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Remapper translates raw key events through a Config's remap table
// before they reach the mode stack, so "remap: {j: n}" makes the 'n'
// key move down instead of 'j' without Normal itself knowing about
// configuration.
type Remapper struct {
	runes map[rune]rune
}

// NewRemapper builds a Remapper from cfg's Remap table. Only
// single-rune from/to entries are honored; anything else is ignored,
// since every §6 normal-mode binding this repo defines is a bare rune.
func NewRemapper(cfg *Config) *Remapper {
	r := &Remapper{runes: map[rune]rune{}}
	if cfg == nil {
		return r
	}
	for from, to := range cfg.Remap {
		fr := []rune(from)
		tr := []rune(to)
		if len(fr) != 1 || len(tr) != 1 {
			continue
		}
		r.runes[fr[0]] = tr[0]
	}
	return r
}

// AddOverrides layers additional "from=to" pairs (as produced by the
// -remap command line flag, one pair per flags.Commas element) on top
// of whatever NewRemapper already loaded from the config file. A CLI
// override replaces a config-file entry for the same source rune
// rather than erroring, since a transient one-off remap is exactly
// what the flag is for.
func (r *Remapper) AddOverrides(pairs []string) error {
	for _, p := range pairs {
		from, to, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid -remap pair %q, want from=to", p)
		}
		fr := []rune(from)
		tr := []rune(to)
		if len(fr) != 1 || len(tr) != 1 {
			return fmt.Errorf("invalid -remap pair %q, from and to must each be a single rune", p)
		}
		r.runes[fr[0]] = tr[0]
	}
	return nil
}

// Apply rewrites ev's Rune through the remap table, leaving
// non-printable keys and modified events untouched.
func (r *Remapper) Apply(ev modes.Event) modes.Event {
	if ev.Key != modes.KeyNone || ev.Alt || ev.Ctrl {
		return ev
	}
	if to, ok := r.runes[ev.Rune]; ok {
		ev.Rune = to
	}
	return ev
}

// bytesPerLineOr returns cfg's override, or fallback if cfg is nil or
// did not set one.
func (cfg *Config) bytesPerLineOr(fallback int) int {
	if cfg == nil || cfg.BytesPerLine <= 0 {
		return fallback
	}
	return cfg.BytesPerLine
}

// BytesPerLine resolves the effective bytes-per-line for cfg (which
// may be nil), falling back to fallback when unset.
func BytesPerLine(cfg *Config, fallback int) int {
	return cfg.bytesPerLineOr(fallback)
}
