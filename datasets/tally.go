package datasets

import "sort"
import "sync"

// Tally counts classification outcomes per (expected, predicted) label pair.
// It is safe for concurrent use by evaluation workers.
type Tally struct {
	// mapping[expected][predicted] is the number of votes
	mapping map[int]map[int]uint64

	hits  uint64
	total uint64

	mut sync.Mutex
}

// Init initializes the tally structure
func (t *Tally) Init() {
	t.mut.Lock()
	t.mapping = make(map[int]map[int]uint64)
	t.hits = 0
	t.total = 0
	t.mut.Unlock()
}

// Free frees the memory occupied by tally structure
func (t *Tally) Free() {
	t.mut.Lock()
	t.mapping = nil
	t.mut.Unlock()
}

// AddToMapping votes for one outcome
func (t *Tally) AddToMapping(expected, predicted int) {
	t.mut.Lock()
	if t.mapping[expected] == nil {
		t.mapping[expected] = make(map[int]uint64)
	}
	t.mapping[expected][predicted]++
	t.total++
	if expected == predicted {
		t.hits++
	}
	t.mut.Unlock()
}

// Hits returns the number of outcomes where predicted matched expected
func (t *Tally) Hits() int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return int(t.hits)
}

// Len returns the number of outcomes tallied
func (t *Tally) Len() int {
	t.mut.Lock()
	defer t.mut.Unlock()
	return int(t.total)
}

// Labels returns every label seen as expected or predicted, ascending
func (t *Tally) Labels() []int {
	var seen = make(map[int]bool)
	t.mut.Lock()
	for expected, freq := range t.mapping {
		seen[expected] = true
		for predicted := range freq {
			seen[predicted] = true
		}
	}
	t.mut.Unlock()
	var o = make([]int, 0, len(seen))
	for l := range seen {
		o = append(o, l)
	}
	sort.Ints(o)
	return o
}

// Matrix returns the confusion matrix over labels, in the given order. Rows
// are expected labels, columns predicted ones. Outcomes involving labels not
// listed are left out.
func (t *Tally) Matrix(labels []int) [][]int {
	var position = make(map[int]int, len(labels))
	for i, l := range labels {
		position[l] = i
	}
	var o = make([][]int, len(labels))
	for i := range o {
		o[i] = make([]int, len(labels))
	}
	t.mut.Lock()
	for expected, freq := range t.mapping {
		i, ok := position[expected]
		if !ok {
			continue
		}
		for predicted, n := range freq {
			if j, ok := position[predicted]; ok {
				o[i][j] = int(n)
			}
		}
	}
	t.mut.Unlock()
	return o
}
