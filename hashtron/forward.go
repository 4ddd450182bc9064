package hashtron

import "github.com/neurlang/quaternary"

import "github.com/neurlang/nlu/hash"

// Command reduces the input by the hashing program
func (h Hashtron) Command(command uint32) uint32 {
	for i := 0; i < h.Len(); i++ {
		var s, max = h.Get(i)
		command = hash.Hash(command, s, max)
	}
	return command
}

// Forward computes the output bits of the hashtron for the input command.
// The output is optionally negated bitwise within Bits().
func (h Hashtron) Forward(command uint32, negate bool) (out uint16) {
	var input = h.Command(command)
	var filter = quaternary.Filter(h.quaternary)
	for j := byte(0); j < h.Bits(); j++ {
		if filter.GetUint32(input|(uint32(j)<<16)) != negate {
			out |= 1 << j
		}
	}
	return
}
