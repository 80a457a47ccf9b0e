// Package search scores and filters directory entries against the
// incremental query typed in Search mode.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/vindfm/vind/internal/fs"
)

// exactNameBonus lifts an entry whose name equals the query above every
// other match. It must dominate any score the per-character bonuses can
// accumulate on realistic file names.
const exactNameBonus = 1 << 16

// Score rates name against query with smart-case subsequence matching:
// an all-lowercase query matches case-insensitively, a query with any
// uppercase rune must match case-sensitively. ok is false when the name
// does not match or the score is not positive; such entries are excluded.
func Score(name, query string) (score int, ok bool) {
	if query == "" || name == "" {
		return 0, false
	}
	if hasUpper(query) && !isSubsequence(query, name) {
		return 0, false
	}

	matches := fuzzy.Find(query, []string{name})
	if len(matches) == 0 {
		return 0, false
	}

	score = matches[0].Score
	if exactMatch(name, query) {
		score += exactNameBonus
	}
	if score <= 0 {
		return 0, false
	}
	return score, true
}

// Rank filters entries against query and orders them by descending score,
// ties broken by the default ordering. An empty query bypasses scoring and
// returns entries unchanged (they arrive default-ordered from the lister).
func Rank(entries []fs.Entry, query string) []fs.Entry {
	if query == "" {
		return entries
	}

	type scored struct {
		entry fs.Entry
		score int
	}
	kept := make([]scored, 0, len(entries))
	for _, e := range entries {
		if s, ok := Score(e.Name, query); ok {
			kept = append(kept, scored{entry: e, score: s})
		}
	}

	// Input is default-ordered, so a stable sort by score alone keeps the
	// default ordering as the tie-break.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	out := make([]fs.Entry, len(kept))
	for i, s := range kept {
		out[i] = s.entry
	}
	return out
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// isSubsequence reports whether query appears in name, in order,
// case-sensitively.
func isSubsequence(query, name string) bool {
	runes := []rune(name)
	i := 0
	for _, q := range query {
		for i < len(runes) && runes[i] != q {
			i++
		}
		if i == len(runes) {
			return false
		}
		i++
	}
	return true
}

func exactMatch(name, query string) bool {
	if hasUpper(query) {
		return name == query
	}
	return strings.ToLower(name) == query
}
