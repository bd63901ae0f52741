// Package trace reads cache access traces.
//
// A trace is a text stream with one operation per line:
//
//	add <key> [weight]
//	get <key>
//	touch <key>
//	remove <key>
//	reset
//
// Weights are plain integers or byte quantities such as 4K or 1.5MB.
// Blank lines and lines starting with # are ignored.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
)

// Op is a trace operation.
type Op int

const (
	OpAdd Op = iota
	OpGet
	OpTouch
	OpRemove
	OpReset
)

var opNames = map[string]Op{
	"add":    OpAdd,
	"get":    OpGet,
	"touch":  OpTouch,
	"remove": OpRemove,
	"reset":  OpReset,
}

var opStrings = [...]string{"add", "get", "touch", "remove", "reset"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opStrings) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opStrings[o]
}

// Event is one parsed trace line. Weight is only meaningful for OpAdd when
// HasWeight is set.
type Event struct {
	Op        Op
	Key       string
	Weight    uint64
	HasWeight bool
	Line      int
}

// ParseError reports a malformed trace line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	ErrUnknownOp = errors.New("unknown operation")
	ErrArguments = errors.New("wrong number of arguments")
	ErrBadWeight = errors.New("invalid weight")
)

// Reader reads events from a trace stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next event, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ev, err := ParseLine(text)
		if err != nil {
			return Event{}, &ParseError{Line: r.line, Err: err}
		}
		ev.Line = r.line
		return ev, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// ReadAll reads every remaining event.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

// ParseLine parses a single non-empty trace line.
func ParseLine(text string) (Event, error) {
	fields := strings.Fields(text)
	op, ok := opNames[strings.ToLower(fields[0])]
	if !ok {
		return Event{}, fmt.Errorf("%w %q", ErrUnknownOp, fields[0])
	}

	args := fields[1:]
	ev := Event{Op: op}
	switch op {
	case OpReset:
		if len(args) != 0 {
			return Event{}, fmt.Errorf("%w: reset takes none", ErrArguments)
		}
	case OpAdd:
		if len(args) < 1 || len(args) > 2 {
			return Event{}, fmt.Errorf("%w: add takes a key and an optional weight", ErrArguments)
		}
		ev.Key = args[0]
		if len(args) == 2 {
			weight, err := ParseWeight(args[1])
			if err != nil {
				return Event{}, err
			}
			ev.Weight = weight
			ev.HasWeight = true
		}
	default:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("%w: %s takes a key", ErrArguments, op)
		}
		ev.Key = args[0]
	}
	return ev, nil
}

// ParseWeight accepts a plain integer or a byte quantity such as 64K.
func ParseWeight(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	n, err := bytefmt.ToBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrBadWeight, s, err)
	}
	return n, nil
}
