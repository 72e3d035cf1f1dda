package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDisplayID(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{name: "empty", existing: nil, want: 1},
		{name: "single", existing: []int{1}, want: 2},
		{name: "gap is not reused", existing: []int{2, 3}, want: 4},
		{name: "unordered", existing: []int{5, 1, 3}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDisplayID(tt.existing))
		})
	}
}

func TestParseDisplayID(t *testing.T) {
	tests := []struct {
		label  string
		want   int
		wantOK bool
	}{
		{label: "(1)", want: 1, wantOK: true},
		{label: "onset(7)", want: 7, wantOK: true},
		{label: "peak (2)(5)", want: 5, wantOK: true},
		{label: "(007)", want: 7, wantOK: true},
		{label: "", wantOK: false},
		{label: "no id here", wantOK: false},
		{label: "(x)", wantOK: false},
		{label: "(-3)", wantOK: false},
		{label: "(3", wantOK: false},
		{label: "(99999999999999999999999)", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseDisplayID(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStripDisplayID(t *testing.T) {
	assert.Equal(t, "", StripDisplayID("(1)"))
	assert.Equal(t, "onset", StripDisplayID("onset(12)"))
	assert.Equal(t, "peak (2)", StripDisplayID("peak (2)(5)"))
	assert.Equal(t, "plain", StripDisplayID("plain"))
}

func TestComposeLabel_RoundTrip(t *testing.T) {
	label := ComposeLabel("baseline", 42)
	assert.Equal(t, "baseline(42)", label)

	id, ok := ParseDisplayID(label)
	assert.True(t, ok)
	assert.Equal(t, 42, id)
	assert.Equal(t, "baseline", StripDisplayID(label))
}
