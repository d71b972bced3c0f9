package letters

import "bufio"
import "io"
import "iter"
import "strconv"
import "strings"

import "github.com/pkg/errors"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/grid"

// RecordSize is the fixed width of a record's grid block in characters: 32
// lines of 32 characters, each followed by "\r\n".
const RecordSize = (grid.Size + 2) * grid.Size

// NoLimit disables the upper bound of a window
const NoLimit = -1

// ErrInvalidLabel is returned when a record's label line is not a decimal integer
var ErrInvalidLabel = errors.New("letters: invalid label")

// Scanner reads the samples of a corpus one record at a time. Only records
// whose 1-based index falls in (skip, skip+limit] are surfaced, the rest are
// read and their labels validated. A truncated trailing record ends the scan
// without error.
type Scanner struct {
	r      *bufio.Reader
	skip   int
	limit  int
	index  int
	sample datasets.Sample
	err    error
	done   bool
	buf    []rune
}

// NewScanner returns a scanner over the corpus in r. A negative limit surfaces
// every record after skip.
func NewScanner(r io.Reader, skip, limit int) *Scanner {
	if skip < 0 {
		skip = 0
	}
	return &Scanner{
		r:     bufio.NewReader(r),
		skip:  skip,
		limit: limit,
		buf:   make([]rune, 0, RecordSize),
	}
}

// inWindow reports whether the record at 1-based index n is surfaced
func (s *Scanner) inWindow(n int) bool {
	return n > s.skip && (s.limit < 0 || n <= s.skip+s.limit)
}

// Scan advances to the next surfaced sample. It returns false at the end of
// the corpus or on the first error.
func (s *Scanner) Scan() bool {
	for !s.done {
		if err := s.block(); err != nil {
			s.stop(err)
			return false
		}
		line, err := s.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			s.stop(err)
			return false
		}
		s.index++

		label, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.err = errors.Wrapf(ErrInvalidLabel, "record %d: %q", s.index, strings.TrimRight(line, "\r\n"))
			s.done = true
			return false
		}
		if !s.inWindow(s.index) {
			continue
		}

		g, err := grid.Decode(string(s.buf))
		if err != nil {
			s.err = errors.Wrapf(err, "record %d", s.index)
			s.done = true
			return false
		}
		s.sample = datasets.NewSample(g, label)
		return true
	}
	return false
}

// block reads the next RecordSize characters of the grid block
func (s *Scanner) block() error {
	s.buf = s.buf[:0]
	for len(s.buf) < RecordSize {
		r, _, err := s.r.ReadRune()
		if err == io.EOF && len(s.buf) > 0 {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		s.buf = append(s.buf, r)
	}
	return nil
}

// stop ends the scan, short reads at the end of the corpus are not errors
func (s *Scanner) stop(err error) {
	s.done = true
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return
	}
	s.err = errors.Wrapf(err, "record %d", s.index+1)
}

// Sample returns the sample produced by the last successful Scan
func (s *Scanner) Sample() datasets.Sample {
	return s.sample
}

// Index returns the 1-based corpus position of the last record read
func (s *Scanner) Index() int {
	return s.index
}

// Err returns the first error encountered
func (s *Scanner) Err() error {
	return s.err
}

// All returns the windowed samples of r as a single-pass sequence. An error
// is yielded once, as the final element.
func All(r io.Reader, skip, limit int) iter.Seq2[datasets.Sample, error] {
	return func(yield func(datasets.Sample, error) bool) {
		var s = NewScanner(r, skip, limit)
		for s.Scan() {
			if !yield(s.Sample(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(datasets.Sample{}, err)
		}
	}
}

// Parse materializes the windowed samples of an in-memory corpus
func Parse(corpus string, skip, limit int) (datasets.Dataset, error) {
	return collect(strings.NewReader(corpus), skip, limit)
}

func collect(r io.Reader, skip, limit int) (d datasets.Dataset, err error) {
	var s = NewScanner(r, skip, limit)
	for s.Scan() {
		d = append(d, s.Sample())
	}
	if err = s.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
