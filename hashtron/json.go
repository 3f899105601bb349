package hashtron

import "encoding/json"

import "github.com/pkg/errors"

type jsonHashtron struct {
	Program    [][2]uint32 `json:"program"`
	Bits       byte        `json:"bits"`
	Quaternary []byte      `json:"quaternary,omitempty"`
}

// MarshalJSON serializes the hashtron program, bits and learned filter
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHashtron{
		Program:    h.program,
		Bits:       h.bits,
		Quaternary: h.quaternary,
	})
}

// UnmarshalJSON restores a hashtron written by MarshalJSON
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var j jsonHashtron
	if err := json.Unmarshal(data, &j); err != nil {
		return errors.Wrap(err, "decoding hashtron")
	}
	tron, err := New(j.Program, j.Bits, j.Quaternary)
	if err != nil {
		return err
	}
	*h = *tron
	return nil
}
