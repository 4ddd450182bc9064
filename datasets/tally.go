package datasets

import "sync"

// Tally is used to count votes on hashtron commands and return the majority votes
type Tally struct {
	// this is for multiway classification
	// each command has a map of possible outputs with number of votes
	// the highest vote in the inner map wins
	mapping map[uint32]map[uint16]uint64

	mut sync.Mutex

	// improvementPossible reports whether any vote was cast
	improvementPossible bool
}

// Init initializes the tally dataset structure
func (t *Tally) Init() {
	t.mapping = make(map[uint32]map[uint16]uint64)
	t.improvementPossible = false
}

// Free frees the memory occupied by tally dataset structure
func (t *Tally) Free() {
	t.mapping = nil
}

// GetImprovementPossible reports whether the tally received any vote
func (t *Tally) GetImprovementPossible() bool {
	t.mut.Lock()
	defer t.mut.Unlock()
	return t.improvementPossible
}

// Len returns the number of distinct commands voted on
func (t *Tally) Len() (o int) {
	t.mut.Lock()
	o = len(t.mapping)
	t.mut.Unlock()
	return
}

// AddToMapping votes for command to produce output. Safe for concurrent use.
func (t *Tally) AddToMapping(command uint32, output uint16) {
	t.mut.Lock()
	if t.mapping == nil {
		t.mapping = make(map[uint32]map[uint16]uint64)
	}
	if t.mapping[command] == nil {
		t.mapping[command] = make(map[uint16]uint64)
	}
	t.mapping[command][output]++
	t.improvementPossible = true
	t.mut.Unlock()
}

// Majority returns the winning output of every command. Ties go to the lowest output.
func (t *Tally) Majority() map[uint32]uint16 {
	t.mut.Lock()
	defer t.mut.Unlock()
	var out = make(map[uint32]uint16, len(t.mapping))
	for command, freq := range t.mapping {
		var best uint16
		var bestVotes uint64
		var first = true
		for output, votes := range freq {
			if first || votes > bestVotes || (votes == bestVotes && output < best) {
				best, bestVotes, first = output, votes, false
			}
		}
		out[command] = best
	}
	return out
}

// Dataset expands the majority outputs into a bit per key dataset. Bit j of the
// output of command c is stored at key c|j<<16, so commands must be below 1<<16.
func (t *Tally) Dataset(bits byte) (d Dataset) {
	d.Init()
	for command, output := range t.Majority() {
		for j := byte(0); j < bits; j++ {
			d[command|uint32(j)<<16] = (output>>j)&1 != 0
		}
	}
	return
}
