// Package datasets implements the dataset and tally types used to train hashtrons
package datasets

// Dataset maps a hashtron command to the boolean the hashtron must answer
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}
