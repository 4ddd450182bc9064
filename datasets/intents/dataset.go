package intents

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BuiltinNumber is the builtin entity resolving numbers
const BuiltinNumber = "snips/number"

// Dataset is the training dataset of the NLU engine
type Dataset struct {
	Language string            `json:"language"`
	Intents  map[string]Intent `json:"intents"`
	Entities map[string]Entity `json:"entities"`
}

// Intent holds the training utterances of one intent
type Intent struct {
	Utterances []Utterance `json:"utterances"`
}

// Utterance is one training sentence, split into chunks
type Utterance struct {
	Data []Chunk `json:"data"`
}

// Chunk is a piece of an utterance; with Entity and SlotName set it is a slot value
type Chunk struct {
	Text     string `json:"text"`
	Entity   string `json:"entity,omitempty"`
	SlotName string `json:"slot_name,omitempty"`
}

// Entity is a custom entity
type Entity struct {
	Data                    []EntityValue `json:"data"`
	UseSynonyms             bool          `json:"use_synonyms"`
	AutomaticallyExtensible bool          `json:"automatically_extensible"`
	MatchingStrictness      float64       `json:"matching_strictness"`
}

// UnmarshalJSON defaults use_synonyms and automatically_extensible to true when
// the keys are missing
func (e *Entity) UnmarshalJSON(data []byte) error {
	type plain Entity
	var p = plain{UseSynonyms: true, AutomaticallyExtensible: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entity(p)
	return nil
}

// EntityValue is a canonical value of a custom entity and its synonyms
type EntityValue struct {
	Value    string   `json:"value"`
	Synonyms []string `json:"synonyms"`
}

// IsSlot reports whether the chunk is a slot value
func (c Chunk) IsSlot() bool {
	return c.SlotName != "" || c.Entity != ""
}

// Text joins the chunks of the utterance
func (u Utterance) Text() string {
	var b strings.Builder
	for _, c := range u.Data {
		b.WriteString(c.Text)
	}
	return b.String()
}

// IsBuiltin reports whether the entity name refers to a builtin entity
func IsBuiltin(entity string) bool {
	return strings.HasPrefix(entity, "snips/")
}

// Load decodes a dataset from a single JSON document
func Load(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode dataset")
	}
	return &d, nil
}

// LoadFile opens, decodes and closes the dataset file at path
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return d, nil
}

// WriteJSON encodes the dataset as indented JSON
func (d *Dataset) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// IntentNames returns the intent names in sorted order
func (d *Dataset) IntentNames() []string {
	var names = make([]string, 0, len(d.Intents))
	for name := range d.Intents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlotEntities maps every slot name of the intent to its entity
func (d *Dataset) SlotEntities(intent string) map[string]string {
	var out = make(map[string]string)
	for _, u := range d.Intents[intent].Utterances {
		for _, c := range u.Data {
			if c.IsSlot() {
				out[c.SlotName] = c.Entity
			}
		}
	}
	return out
}

// SlotNames returns the slot names of the intent in sorted order
func (d *Dataset) SlotNames(intent string) []string {
	var names []string
	for name := range d.SlotEntities(intent) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
