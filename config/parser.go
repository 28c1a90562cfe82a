// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// block is a single "name:" paragraph together with its key=value pairs,
// following the whitespace-tolerant, '#'-comment grammar of spec.md §6.
type block struct {
	name   string
	values map[string]string
}

// parseBlocks splits file text into top-level key=value pairs (block "")
// and named paragraphs introduced by "name:" lines.
func parseBlocks(text string) []block {
	var blocks []block
	cur := block{values: map[string]string{}}
	for _, raw := range strings.Split(text, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, "=") {
			if len(cur.values) > 0 || cur.name != "" {
				blocks = append(blocks, cur)
			}
			cur = block{name: strings.TrimSuffix(line, ":"), values: map[string]string{}}
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		cur.values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if len(cur.values) > 0 || cur.name != "" {
		blocks = append(blocks, cur)
	}
	return blocks
}

func (b block) float(key string, def float64) float64 {
	if s, ok := b.values[key]; ok {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return v
		}
	}
	return def
}

func (b block) int(key string, def int) int {
	if s, ok := b.values[key]; ok {
		v, err := strconv.Atoi(s)
		if err == nil {
			return v
		}
	}
	return def
}

func (b block) bool(key string, def bool) bool {
	if s, ok := b.values[key]; ok {
		return io.Atob(s)
	}
	return def
}

// parseAngleSet fills an AngleSet from one block's key=value pairs, e.g.
//
//	theta:
//	min=0
//	max=180
//	Jmin=2
//	Jmax=10
//	eps=1e-4
//	equiv=false
//	periodic=false
func parseAngleSet(b block, degrees bool) AngleSet {
	conv := 1.0
	if degrees {
		conv = degToRad
	}
	return AngleSet{
		Min:      b.float("min", 0) * conv,
		Max:      b.float("max", 0) * conv,
		Jmin:     b.int("Jmin", 2),
		Jmax:     b.int("Jmax", 10),
		Eps:      b.float("eps", 1e-4),
		Equiv:    b.bool("equiv", false),
		Periodic: b.bool("periodic", false),
	}
}

const degToRad = 3.14159265358979323846 / 180

// LoadAngleSet reads a single angular-parameter paragraph file (one of
// the "orientation-averaging parameters" or "all-direction integration
// parameters" files of spec.md §6) that contains exactly one "min=" /
// "max=" / "Jmin=" / ... block.
func LoadAngleSet(path string, degrees bool) (AngleSet, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return AngleSet{}, chk.Err("cannot read angle-parameter file %q: %v", path, err)
	}
	blocks := parseBlocks(string(buf))
	if len(blocks) == 0 {
		return AngleSet{}, chk.Err("angle-parameter file %q has no key=value block", path)
	}
	return parseAngleSet(blocks[0], degrees), nil
}

// ScatGrid describes the scattering-grid input (spec.md §6): either a
// (theta,phi) grid of angle sets or an explicit list of (theta,phi)
// pairs.
type ScatGrid struct {
	PairsMode bool
	Theta     AngleSet
	Phi       AngleSet
	Pairs     [][2]float64 // radians
}

// LoadScatGrid reads the "global_type={grid|pairs}" scattering-grid file.
func LoadScatGrid(path string, degrees bool) (ScatGrid, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return ScatGrid{}, chk.Err("cannot read scattering-grid file %q: %v", path, err)
	}
	blocks := parseBlocks(string(buf))
	var g ScatGrid
	conv := 1.0
	if degrees {
		conv = degToRad
	}
	for _, b := range blocks {
		switch b.name {
		case "":
			if b.values["global_type"] == "pairs" {
				g.PairsMode = true
			}
		case "theta":
			g.Theta = parseAngleSet(b, degrees)
		case "phi":
			g.Phi = parseAngleSet(b, degrees)
			g.Phi.Periodic = true
		case "pairs":
			if s, ok := b.values["pairs"]; ok {
				for _, line := range strings.Split(s, ";") {
					fields := strings.Fields(line)
					if len(fields) != 2 {
						continue
					}
					t, err1 := strconv.ParseFloat(fields[0], 64)
					p, err2 := strconv.ParseFloat(fields[1], 64)
					if err1 == nil && err2 == nil {
						g.Pairs = append(g.Pairs, [2]float64{t * conv, p * conv})
					}
				}
			}
		}
	}
	return g, nil
}
