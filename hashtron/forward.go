package hashtron

import "github.com/neurlang/tokenvision/hash"
import "github.com/neurlang/quaternary"

// Forward runs the command through the hashing program and returns up to
// Bits() output bits. Without a learned filter the lowest bit of the final
// hash is the answer.
func (h Hashtron) Forward(command uint32, negate bool) (out uint16) {
	if h.Len() == 0 {
		return
	}
	for j := byte(0); j < h.Bits(); j++ {
		var input = uint32(command) | (uint32(j) << 16)
		var ss, maxx = h.Get(0)
		input = hash.Hash(input, ss, maxx)
		for i := 1; i < h.Len(); i++ {
			var s, max = h.Get(i)
			if max >= maxx {
				break
			}
			maxx -= max
			input = hash.Hash(input, s, maxx)
		}
		var bit bool
		if len(h.quaternary) > 0 {
			bit = quaternary.Filter(h.quaternary).GetUint32(input)
		} else {
			bit = input&1 != 0
		}
		if negate {
			bit = !bit
		}
		if bit {
			out |= 1 << j
		}
	}
	return
}
