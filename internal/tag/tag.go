// Package tag owns the encoding of display ids inside marker label text.
// A label is a free-form prefix followed by a decimal id in parentheses, e.g. "onset(7)".
// Nothing else in the module may derive ids from text.
package tag

import (
	"regexp"
	"strconv"
)

var idToken = regexp.MustCompile(`\((\d+)\)`)

// NextDisplayID returns one past the largest id in use, or 1 when none are.
func NextDisplayID(existing []int) int {
	highest := 0
	for _, id := range existing {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

// ParseDisplayID extracts the id token from a label.
// When several tokens are present the last one wins, since ComposeLabel appends.
// Labels without a well-formed token report ok=false.
func ParseDisplayID(label string) (id int, ok bool) {
	loc := lastToken(label)
	if loc == nil {
		return 0, false
	}
	n, err := strconv.Atoi(label[loc[2]:loc[3]])
	if err != nil {
		// digits that overflow int
		return 0, false
	}
	return n, true
}

// StripDisplayID removes the id token reported by ParseDisplayID and returns the rest.
func StripDisplayID(label string) string {
	loc := lastToken(label)
	if loc == nil {
		return label
	}
	if _, err := strconv.Atoi(label[loc[2]:loc[3]]); err != nil {
		return label
	}
	return label[:loc[0]] + label[loc[1]:]
}

// ComposeLabel appends the parenthesized id to prefix.
func ComposeLabel(prefix string, id int) string {
	return prefix + "(" + strconv.Itoa(id) + ")"
}

func lastToken(label string) []int {
	all := idToken.FindAllStringSubmatchIndex(label, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}
