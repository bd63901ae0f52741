package trace

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	input := `# warm up
add a
add b 4K

GET a
touch b
remove a
reset
`
	events, err := NewReader(strings.NewReader(input)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []Event{
		{Op: OpAdd, Key: "a", Line: 2},
		{Op: OpAdd, Key: "b", Weight: 4096, HasWeight: true, Line: 3},
		{Op: OpGet, Key: "a", Line: 5},
		{Op: OpTouch, Key: "b", Line: 6},
		{Op: OpRemove, Key: "a", Line: 7},
		{Op: OpReset, Line: 8},
	}, events)
}

func TestNextReturnsEOF(t *testing.T) {
	r := NewReader(strings.NewReader("get a\n"))

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestParseErrorsCarryLineNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		err   error
	}{
		{"unknown op", "add a\nfetch a\n", 2, ErrUnknownOp},
		{"missing key", "get\n", 1, ErrArguments},
		{"extra argument", "touch a b\n", 1, ErrArguments},
		{"reset with key", "\n\nreset a\n", 3, ErrArguments},
		{"bad weight", "add a heavy\n", 1, ErrBadWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input)).ReadAll()

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.line, perr.Line)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseWeight(t *testing.T) {
	tests := map[string]uint64{
		"0":   0,
		"17":  17,
		"1K":  1024,
		"2MB": 2 * 1024 * 1024,
	}
	for in, want := range tests {
		got, err := ParseWeight(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeight("-3")
	assert.ErrorIs(t, err, ErrBadWeight)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "touch", OpTouch.String())
	assert.Equal(t, "Op(9)", Op(9).String())
}
