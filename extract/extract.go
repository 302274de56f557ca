// Package extract recovers structured JSON payloads embedded in free-form
// tool output.
package extract

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	fencedBlock  = regexp.MustCompile("(?s)```(?:json)?[ \t]*\n(.*?)\n```")
	greedyObject = regexp.MustCompile(`(?s)\{.*\}`)
	greedyArray  = regexp.MustCompile(`(?s)\[.*\]`)
)

// JSON attempts to recover a single JSON value from raw output, trying three
// strategies in order and returning the first hit:
//
//  1. the whole text is a JSON literal
//  2. a fenced code block (optionally tagged json) contains one, blocks
//     tried in order of appearance
//  3. a greedy brace- or bracket-delimited span contains one, braces before
//     brackets
//
// A miss returns the zero gjson.Result, whose Exists method reports false.
// Prose output with no payload is an expected condition, never an error.
//
// The greedy spans take the widest possible substring, so nested or multiple
// JSON values in the same text can be mis-bounded. This is a best-effort
// heuristic, not a guarantee of recovering the "right" embedded value.
func JSON(output string) gjson.Result {
	if strings.TrimSpace(output) == "" {
		return gjson.Result{}
	}

	if r, ok := parseValue(output); ok {
		return r
	}

	for _, m := range fencedBlock.FindAllStringSubmatch(output, -1) {
		if r, ok := parseValue(m[1]); ok {
			return r
		}
	}

	for _, re := range []*regexp.Regexp{greedyObject, greedyArray} {
		for _, m := range re.FindAllString(output, -1) {
			if r, ok := parseValue(m); ok {
				return r
			}
		}
	}

	return gjson.Result{}
}

// parseValue accepts only object and array literals. Bare scalars show up in
// ordinary prose far too often to treat as structured payloads.
func parseValue(s string) (gjson.Result, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !gjson.Valid(s) {
		return gjson.Result{}, false
	}
	r := gjson.Parse(s)
	if r.IsObject() || r.IsArray() {
		return r, true
	}
	return gjson.Result{}, false
}
