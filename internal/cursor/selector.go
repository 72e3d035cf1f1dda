package cursor

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector picks markers by display id for bulk operations.
type Selector struct {
	all bool
	ids []int
}

// All selects every marker in the registry
func All() Selector {
	return Selector{all: true}
}

// IDs selects markers by display id. Duplicates are allowed.
func IDs(ids ...int) Selector {
	return Selector{ids: append([]int(nil), ids...)}
}

// IsAll reports whether the selector matches every marker
func (s Selector) IsAll() bool {
	return s.all
}

// IDList returns the selected ids, nil for All
func (s Selector) IDList() []int {
	return append([]int(nil), s.ids...)
}

func (s Selector) String() string {
	if s.all {
		return "all"
	}
	parts := make([]string, len(s.ids))
	for i, id := range s.ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// SelectorFrom converts a loosely typed selector: "all", a single id, or a
// slice of ids. Anything else is ErrInvalidSelector.
func SelectorFrom(v any) (Selector, error) {
	switch sel := v.(type) {
	case Selector:
		return sel, nil
	case string:
		return ParseSelector(sel)
	case int:
		return IDs(sel), nil
	case []int:
		return IDs(sel...), nil
	case []any:
		ids := make([]int, 0, len(sel))
		for _, item := range sel {
			id, ok := item.(int)
			if !ok {
				return Selector{}, fmt.Errorf("%w: element %v (%T)", ErrInvalidSelector, item, item)
			}
			ids = append(ids, id)
		}
		return IDs(ids...), nil
	default:
		return Selector{}, fmt.Errorf("%w: %T", ErrInvalidSelector, v)
	}
}

// ParseSelector parses "all" or a comma separated list of ids such as "1,2,5".
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return All(), nil
	}
	if s == "" {
		return Selector{}, fmt.Errorf("%w: empty", ErrInvalidSelector)
	}

	fields := strings.Split(s, ",")
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, f)
		}
		ids = append(ids, id)
	}
	return IDs(ids...), nil
}
