package hashtron

import "github.com/pkg/errors"

// MaxBits is the largest number of output bits; bit j of the output is queried at command|j<<16.
const MaxBits = 16

// New creates a hashtron from a premodulo program, the number of output bits and the
// quaternary filter answering them.
func New(program [][2]uint32, bits byte, filter []byte) (*Hashtron, error) {
	if bits > MaxBits {
		return nil, errors.Errorf("hashtron can't have %d output bits, max is %d", bits, MaxBits)
	}
	if len(program) == 0 {
		return nil, errors.New("hashtron needs a premodulo program")
	}
	if len(filter) == 0 {
		return nil, errors.New("hashtron needs a quaternary filter")
	}
	if max := program[len(program)-1][1]; max == 0 || max > 1<<16 {
		return nil, errors.Errorf("premodulo %d does not fit the 16 bit command space", max)
	}
	if bits == 0 {
		bits = 1
	}
	return &Hashtron{program: program, bits: bits, quaternary: filter}, nil
}
