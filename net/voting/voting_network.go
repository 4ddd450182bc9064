// Package voting implements a network of hashtron heads voting on string features.
//
// Every head maps a feature through its own prime premodulo into a quaternary filter
// answering the label of the feature. Heads collide on different features, so a
// feature only votes when all heads agree on an in-range label.
package voting

import (
	"github.com/pkg/errors"

	"github.com/neurlang/nlu/datasets"
	"github.com/neurlang/nlu/hash"
	"github.com/neurlang/nlu/hashtron"
	"github.com/neurlang/nlu/inference"
	"github.com/neurlang/nlu/parallel"
	"github.com/neurlang/nlu/trainer"
)

// Network is a voting network over the label space [0, Labels)
type Network struct {
	labels     uint16
	bits       byte
	premodulos []uint32
	heads      []*hashtron.Hashtron
}

// Sample is one training sample: every feature votes for the label
type Sample struct {
	Features []string
	Label    uint16
}

// Votes counts the votes cast for each label, indexed by label
type Votes []uint32

// BitsFor returns the number of output bits needed to encode labels distinct labels
func BitsFor(labels uint16) (bits byte) {
	for bits = 1; int(labels) > 1<<int(bits); bits++ {
	}
	return
}

// New creates an untrained network with one head per premodulo
func New(labels uint16, premodulos []uint32) (*Network, error) {
	if labels < 2 {
		return nil, errors.Errorf("voting network needs at least 2 labels, got %d", labels)
	}
	if len(premodulos) == 0 {
		return nil, errors.New("voting network needs at least one head")
	}
	for _, p := range premodulos {
		if p == 0 || p > 1<<16 {
			return nil, errors.Errorf("premodulo %d out of range", p)
		}
	}
	return &Network{
		labels:     labels,
		bits:       BitsFor(labels),
		premodulos: append([]uint32(nil), premodulos...),
	}, nil
}

// Labels returns the size of the label space
func (n *Network) Labels() uint16 {
	return n.labels
}

// Len returns the number of heads
func (n *Network) Len() int {
	return len(n.premodulos)
}

// Trained reports whether the heads are trained
func (n *Network) Trained() bool {
	return len(n.heads) == len(n.premodulos) && len(n.heads) > 0
}

func salt(head int) uint32 {
	return hash.Hash(uint32(head)+1, 0x9E3779B9, 0xFFFFFFFF)
}

// Command returns the command a feature is presented to the heads as
func Command(feature string) uint32 {
	return hash.StringHash(0, feature)
}

// Train tallies the samples and trains all heads, each on its own goroutine up to threads.
// A network whose samples carry no features stays untrained and casts no votes.
func (n *Network) Train(samples []Sample, threads int) error {
	var commands []uint32
	var labels []uint16
	for _, s := range samples {
		if s.Label >= n.labels {
			return errors.Errorf("label %d out of range %d", s.Label, n.labels)
		}
		for _, f := range s.Features {
			commands = append(commands, Command(f))
			labels = append(labels, s.Label)
		}
	}
	var heads = make([]*hashtron.Hashtron, len(n.premodulos))
	var errs = make([]error, len(n.premodulos))
	parallel.ForEach(len(n.premodulos), threads, func(i int) {
		var tally datasets.Tally
		tally.Init()
		defer tally.Free()
		for j, bucket := range hash.HashMany(commands, salt(i), n.premodulos[i]) {
			tally.AddToMapping(bucket, labels[j])
		}
		heads[i], errs[i] = trainer.NewHead(&tally, salt(i), n.premodulos[i], n.bits)
	})
	for i, err := range errs {
		if errors.Is(err, trainer.ErrEmptyTally) {
			n.heads = nil
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "train head %d", i)
		}
	}
	n.heads = heads
	return nil
}

// Vote returns the label the feature votes for, if all heads agree on it
func (n *Network) Vote(feature string) (label uint16, ok bool) {
	if !n.Trained() {
		return 0, false
	}
	label, ok = inference.Unanimous(Command(feature), n.heads)
	return label, ok && label < n.labels
}

// Infer counts the votes of the features
func (n *Network) Infer(features []string) Votes {
	var votes = make(Votes, n.labels)
	for _, f := range features {
		if label, ok := n.Vote(f); ok {
			votes[label]++
		}
	}
	return votes
}

// Total returns the number of votes cast
func (v Votes) Total() (total uint32) {
	for _, c := range v {
		total += c
	}
	return
}

// Best returns the label with most votes, ties go to the lowest label.
// Labels below from are not considered.
func (v Votes) Best(from uint16) (label uint16, count uint32) {
	label = from
	for l := int(from); l < len(v); l++ {
		if v[l] > count {
			label, count = uint16(l), v[l]
		}
	}
	return
}
