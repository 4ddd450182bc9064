package intents

import (
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlDocument is one document of a YAML dataset source, either an intent or an entity
type yamlDocument struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`

	Slots      []yamlSlot `yaml:"slots"`
	Utterances []string   `yaml:"utterances"`

	Values                  []yamlValue `yaml:"values"`
	AutomaticallyExtensible *bool       `yaml:"automatically_extensible"`
	UseSynonyms             *bool       `yaml:"use_synonyms"`
	MatchingStrictness      *float64    `yaml:"matching_strictness"`
}

type yamlSlot struct {
	Name   string `yaml:"name"`
	Entity string `yaml:"entity"`
}

// yamlValue is an entity value given as a string or as a [value, synonyms...] list
type yamlValue EntityValue

func (v *yamlValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Value = node.Value
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		if len(list) == 0 {
			return errors.Errorf("line %d: empty entity value list", node.Line)
		}
		v.Value, v.Synonyms = list[0], list[1:]
		return nil
	}
	return errors.Errorf("line %d: entity value must be a string or a list", node.Line)
}

var annotation = regexp.MustCompile(`\[([^\]:]+)(?::([^\]]+))?\]\(([^)]*)\)`)

// parseUtterance splits "turn on the [room](kitchen) light" into chunks
func parseUtterance(text string, slots map[string]string) (u Utterance) {
	var last int
	for _, m := range annotation.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			u.Data = append(u.Data, Chunk{Text: text[last:m[0]]})
		}
		slot := text[m[2]:m[3]]
		entity := slots[slot]
		if m[4] >= 0 {
			entity = text[m[4]:m[5]]
		}
		if entity == "" {
			entity = slot
		}
		u.Data = append(u.Data, Chunk{Text: text[m[6]:m[7]], Entity: entity, SlotName: slot})
		last = m[1]
	}
	if last < len(text) {
		u.Data = append(u.Data, Chunk{Text: text[last:]})
	}
	return
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// merge adds the documents of the YAML stream r to d
func (d *Dataset) merge(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var doc yamlDocument
		err := dec.Decode(&doc)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "decode yaml")
		}
		if doc.Name == "" {
			return errors.Errorf("%s document without a name", doc.Type)
		}
		switch doc.Type {
		case "intent":
			var slots = make(map[string]string)
			for _, s := range doc.Slots {
				slots[s.Name] = s.Entity
			}
			intent := d.Intents[doc.Name]
			for _, text := range doc.Utterances {
				intent.Utterances = append(intent.Utterances, parseUtterance(text, slots))
			}
			d.Intents[doc.Name] = intent
		case "entity":
			if _, dup := d.Entities[doc.Name]; dup {
				return errors.Errorf("entity %q defined twice", doc.Name)
			}
			e := Entity{
				AutomaticallyExtensible: boolOr(doc.AutomaticallyExtensible, true),
				UseSynonyms:             boolOr(doc.UseSynonyms, true),
				MatchingStrictness:      1,
			}
			if doc.MatchingStrictness != nil {
				e.MatchingStrictness = *doc.MatchingStrictness
			}
			for _, v := range doc.Values {
				e.Data = append(e.Data, EntityValue(v))
			}
			d.Entities[doc.Name] = e
		default:
			return errors.Errorf("unknown document type %q", doc.Type)
		}
	}
}

// ParseYAML builds a dataset from a multi-document YAML stream and validates it
func ParseYAML(language string, r io.Reader) (*Dataset, error) {
	var d = &Dataset{
		Language: language,
		Intents:  make(map[string]Intent),
		Entities: make(map[string]Entity),
	}
	if err := d.merge(r); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// GenerateDataset merges every YAML file matched by the doublestar patterns into a
// validated dataset. Files are read in sorted order.
func GenerateDataset(language string, patterns ...string) (*Dataset, error) {
	var files []string
	var seen = make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "glob %s", pattern)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match %s", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	var d = &Dataset{
		Language: language,
		Intents:  make(map[string]Intent),
		Entities: make(map[string]Entity),
	}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(err, "open yaml")
		}
		err = d.merge(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "merge %s", file)
		}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
