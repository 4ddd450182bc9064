package trainer

import "github.com/jbarham/primegen"
import "github.com/pkg/errors"

// Primes returns n consecutive primes starting at floor. Primes are used as premodulo,
// so they must stay within the 16 bit command space of a hashtron.
func Primes(floor uint32, n int) ([]uint32, error) {
	if floor < 2 {
		floor = 2
	}
	var pg = primegen.New()
	pg.SkipTo(uint64(floor))
	var out = make([]uint32, 0, n)
	for len(out) < n {
		p := pg.Next()
		if p > 1<<16 {
			return nil, errors.Errorf("not enough premodulo primes between %d and %d", floor, 1<<16)
		}
		out = append(out, uint32(p))
	}
	return out, nil
}
