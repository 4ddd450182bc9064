package intents

import (
	"fmt"
	"strings"
)

// ValidationError locates a problem in the dataset
type ValidationError struct {
	Intent    string
	Utterance int
	Chunk     int
	Entity    string
	Reason    string
}

func (e *ValidationError) Error() string {
	var where []string
	if e.Intent != "" {
		where = append(where, fmt.Sprintf("intent %q utterance %d chunk %d", e.Intent, e.Utterance, e.Chunk))
	}
	if e.Entity != "" {
		where = append(where, fmt.Sprintf("entity %q", e.Entity))
	}
	if len(where) == 0 {
		return "invalid dataset: " + e.Reason
	}
	return "invalid dataset: " + strings.Join(where, ", ") + ": " + e.Reason
}

// Validate checks the dataset is usable for training
func (d *Dataset) Validate() error {
	if d.Language == "" {
		return &ValidationError{Reason: "language is required"}
	}
	if len(d.Intents) == 0 {
		return &ValidationError{Reason: "at least one intent is required"}
	}
	for name, e := range d.Entities {
		if IsBuiltin(name) {
			return &ValidationError{Entity: name, Reason: "custom entity can't use the builtin prefix"}
		}
		for _, v := range e.Data {
			if strings.TrimSpace(v.Value) == "" {
				return &ValidationError{Entity: name, Reason: "empty entity value"}
			}
		}
	}
	for _, name := range d.IntentNames() {
		var slots = make(map[string]string)
		for i, u := range d.Intents[name].Utterances {
			for j, c := range u.Data {
				fail := func(reason string) error {
					return &ValidationError{Intent: name, Utterance: i, Chunk: j, Reason: reason}
				}
				if !c.IsSlot() {
					continue
				}
				if c.SlotName == "" {
					return fail("chunk with an entity needs a slot_name")
				}
				if c.Entity == "" {
					return fail("chunk with a slot_name needs an entity")
				}
				if strings.TrimSpace(c.Text) == "" {
					return fail("slot value is empty")
				}
				if c.Entity != BuiltinNumber {
					if IsBuiltin(c.Entity) {
						return fail("unsupported builtin entity " + c.Entity)
					}
					if _, ok := d.Entities[c.Entity]; !ok {
						return fail("undeclared entity " + c.Entity)
					}
				}
				if prev, ok := slots[c.SlotName]; ok && prev != c.Entity {
					return fail(fmt.Sprintf("slot %q maps to both %q and %q", c.SlotName, prev, c.Entity))
				}
				slots[c.SlotName] = c.Entity
			}
		}
	}
	return nil
}
