package hashtron

import "github.com/pkg/errors"

// New creates a hashtron from a hashing program, the number of output bits and
// an optional learned quaternary filter.
func New(program [][2]uint32, bits byte, filter ...[]byte) (h *Hashtron, err error) {
	if len(filter) > 1 {
		return nil, errors.New("at most one quaternary filter is supported (new Hashtron)")
	}
	for i, v := range program {
		if v[1] == 0 {
			return nil, errors.Errorf("program command %d has zero modulo", i)
		}
	}
	h = new(Hashtron)
	if bits == 0 {
		bits = 1
	}
	h.program = program
	h.bits = bits
	if len(filter) == 1 {
		h.quaternary = filter[0]
	}
	return
}
