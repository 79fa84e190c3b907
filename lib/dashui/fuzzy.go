// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one candidate string against
// a filter pattern.
type FuzzyResult struct {
	// Matched is true when every pattern rune was found in order.
	Matched bool

	// Score ranks matches; higher is better. Zero for non-matches.
	Score int

	// Positions are the rune indices of the matched characters,
	// usable for highlight rendering.
	Positions []int
}

// fuzzyMatch runs fzf's FuzzyMatchV2 against a single candidate.
// Matching is case-insensitive; the pattern is lowercased here so
// callers can pass user input directly. The slab is fzf's scratch
// allocation arena — reuse one across a whole filter pass.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}
	match := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		match.Positions = *positions
	}
	return match
}

// newFuzzySlab allocates the scratch arena fuzzyMatch needs. The sizes
// match fzf's own defaults.
func newFuzzySlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
