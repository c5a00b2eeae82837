package datasets

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/reusee/scone/executors"
)

// Example is a slice of a story: utterances with the states before and after them.
type Example struct {
	ID string
	// Offset is the number of utterances of the story preceding this slice.
	Offset     int
	Utterances [][]string
	Initial    executors.WorldState
	Target     executors.WorldState
}

// Reader reads TSV stories of the form
//
//	<id> <initial state> <utterance 1> <state 1> <utterance 2> <state 2> ...
type Reader struct {
	Path   string
	Domain Domain
	// ParseState builds world states from raw strings. If nil, example states are left unset.
	ParseState func(raw string) (executors.WorldState, error)
	// NumSteps lists the numbers of utterances per example. -1 takes the whole story.
	NumSteps []int
	// SliceFromMiddle also emits slices starting after the first utterance.
	SliceFromMiddle bool
}

const maxLineSize = 16 * 1024 * 1024

// Examples reads Path from the start on every iteration.
func (r Reader) Examples() iter.Seq2[Example, error] {
	return func(yield func(Example, error) bool) {
		f, err := os.Open(r.Path)
		if err != nil {
			yield(Example{}, err)
			return
		}
		defer f.Close()
		for example, err := range r.Read(f) {
			if !yield(example, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

func (r Reader) Read(input io.Reader) iter.Seq2[Example, error] {
	return func(yield func(Example, error) bool) {
		scanner := bufio.NewScanner(input)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimRight(scanner.Text(), "\r")
			if line == "" {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields)%2 != 0 {
				yield(Example{}, fmt.Errorf("%s:%d: odd number of fields: %d", r.Path, lineNum, len(fields)))
				return
			}
			for _, numSteps := range r.numSteps() {
				for example, err := range r.slices(fields, numSteps) {
					if err != nil {
						err = fmt.Errorf("%s:%d: %w", r.Path, lineNum, err)
					}
					if !yield(example, err) {
						return
					}
					if err != nil {
						return
					}
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Example{}, err)
		}
	}
}

func (r Reader) numSteps() []int {
	if len(r.NumSteps) == 0 {
		return []int{-1}
	}
	return r.NumSteps
}

func (r Reader) slices(fields []string, numSteps int) iter.Seq2[Example, error] {
	return func(yield func(Example, error) bool) {
		if numSteps == -1 {
			numSteps = len(fields)/2 - 1
		}
		if numSteps < 0 {
			yield(Example{}, fmt.Errorf("bad number of steps: %d", numSteps))
			return
		}
		for start := 1; start+2*numSteps < len(fields); start += 2 {
			example := Example{
				ID:     fields[0],
				Offset: (start - 1) / 2,
			}
			for i := start + 1; i < start+2*numSteps; i += 2 {
				example.Utterances = append(example.Utterances, strings.Fields(fields[i]))
			}
			var err error
			example.Initial, err = r.parseState(fields[start])
			if err != nil {
				yield(Example{}, err)
				return
			}
			example.Target, err = r.parseState(fields[start+2*numSteps])
			if err != nil {
				yield(Example{}, err)
				return
			}
			if !yield(example, nil) {
				return
			}
			if !r.SliceFromMiddle {
				break
			}
		}
	}
}

func (r Reader) parseState(raw string) (executors.WorldState, error) {
	if r.ParseState == nil {
		return nil, nil
	}
	state, err := r.ParseState(raw)
	if err != nil {
		return nil, fmt.Errorf("parse state %q: %w", raw, err)
	}
	return state, nil
}
