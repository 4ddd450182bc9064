// Package inference implements the inference stage of hashtron heads
package inference

// Model is a trained classifier answering a command with output bits
type Model interface {
	Forward(command uint32, negate bool) uint16
}

// Unanimous returns the output of the models for the command, if all of them agree
func Unanimous[M Model](command uint32, models []M) (out uint16, ok bool) {
	if len(models) == 0 {
		return 0, false
	}
	out = models[0].Forward(command, false)
	for _, m := range models[1:] {
		if m.Forward(command, false) != out {
			return 0, false
		}
	}
	return out, true
}
