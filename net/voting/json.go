package voting

import (
	"compress/lzw"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/neurlang/nlu/hashtron"
)

type networkJSON struct {
	Bits   byte                 `json:"bits"`
	Labels uint16               `json:"labels"`
	Heads  []*hashtron.Hashtron `json:"heads"`
}

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (n *Network) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = n.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (n *Network) WriteCompressedWeights(w io.Writer) error {
	if !n.Trained() {
		return errors.New("voting network is not trained")
	}
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	err := json.NewEncoder(lw).Encode(networkJSON{
		Bits:   n.bits,
		Labels: n.labels,
		Heads:  n.heads,
	})
	if err != nil {
		lw.Close()
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func ReadCompressedWeightsFromFile(name string) (*Network, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCompressedWeights(file)
}

// ReadCompressedWeights reads model weights from a reader
func ReadCompressedWeights(r io.Reader) (*Network, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var v networkJSON
	if err := json.NewDecoder(lr).Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decode voting network")
	}
	if v.Labels < 2 || len(v.Heads) == 0 {
		return nil, errors.Errorf("voting network with %d labels and %d heads", v.Labels, len(v.Heads))
	}
	if v.Bits != BitsFor(v.Labels) {
		return nil, errors.Errorf("voting network has %d bits for %d labels", v.Bits, v.Labels)
	}
	var n = &Network{labels: v.Labels, bits: v.Bits, heads: v.Heads}
	for i, h := range v.Heads {
		if h == nil || h.Len() != 1 || h.Bits() != v.Bits {
			return nil, errors.Errorf("voting network head %d is malformed", i)
		}
		if s, _ := h.Get(0); s != salt(i) {
			return nil, errors.Errorf("voting network head %d has salt %d", i, s)
		}
		_, premodulo := h.Get(0)
		n.premodulos = append(n.premodulos, premodulo)
	}
	return n, nil
}
