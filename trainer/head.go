package trainer

import "github.com/neurlang/quaternary"
import "github.com/pkg/errors"

import "github.com/neurlang/nlu/datasets"
import "github.com/neurlang/nlu/hashtron"

// ErrEmptyTally is returned when a hashtron would be trained on no votes
var ErrEmptyTally = errors.New("tally has no votes")

// NewHead trains a hashtron answering the majority output of every tallied command.
// Commands reach the filter through the premodulo (salt, premodulo), which must not exceed 1<<16.
func NewHead(tally *datasets.Tally, salt, premodulo uint32, bits byte) (*hashtron.Hashtron, error) {
	if !tally.GetImprovementPossible() {
		return nil, ErrEmptyTally
	}
	if premodulo == 0 || premodulo > 1<<16 {
		return nil, errors.Errorf("premodulo %d out of range", premodulo)
	}
	dset := tally.Dataset(bits)
	q := quaternary.Make(map[uint32]bool(dset))

	htron, err := hashtron.New([][2]uint32{{salt, premodulo}}, bits, []byte(q))
	if err != nil {
		return nil, errors.Wrap(err, "new hashtron")
	}
	return htron, nil
}
