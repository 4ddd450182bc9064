package hashtron

import "encoding/json"

import "github.com/pkg/errors"

type hashtronJSON struct {
	Program    [][2]uint32 `json:"program"`
	Bits       byte        `json:"bits"`
	Quaternary []byte      `json:"quaternary,omitempty"`
}

// MarshalJSON encodes the program, bits and quaternary filter (base64)
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(hashtronJSON{
		Program:    h.program,
		Bits:       h.bits,
		Quaternary: h.quaternary,
	})
}

// UnmarshalJSON decodes a hashtron written by MarshalJSON
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var v hashtronJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t, err := New(v.Program, v.Bits, v.Quaternary)
	if err != nil {
		return errors.Wrap(err, "hashtron json")
	}
	*h = *t
	return nil
}
