package intents

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, "en", d.Language)
	assert.Equal(t, []string{"rollAbility", "rollDice", "showHelp"}, d.IntentNames())
	assert.Equal(t, map[string]string{"count": BuiltinNumber}, d.SlotEntities("rollDice"))
	assert.Equal(t, "roll two dice", d.Intents["rollDice"].Utterances[0].Text())
	assert.Empty(t, d.SlotNames("showHelp"))
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader(`{"language": "en", "intents": [`))
	require.Error(t, err)
}

func TestLoadEntityDefaults(t *testing.T) {
	d, err := Load(strings.NewReader(`{"language": "en", "entities": {
		"color": {"data": [{"value": "red", "synonyms": ["crimson"]}]},
		"size": {"data": [], "use_synonyms": false, "automatically_extensible": false}
	}}`))
	require.NoError(t, err)
	assert.True(t, d.Entities["color"].UseSynonyms)
	assert.True(t, d.Entities["color"].AutomaticallyExtensible)
	assert.False(t, d.Entities["size"].UseSynonyms)
	assert.False(t, d.Entities["size"].AutomaticallyExtensible)
}

func TestValidate(t *testing.T) {
	chunk := func(c Chunk) *Dataset {
		return &Dataset{
			Language: "en",
			Intents: map[string]Intent{
				"greet": {Utterances: []Utterance{{Data: []Chunk{{Text: "hi "}, c}}}},
			},
		}
	}
	for name, tc := range map[string]*Dataset{
		"no language":      {Intents: map[string]Intent{"a": {}}},
		"no intents":       {Language: "en"},
		"slot without ent": chunk(Chunk{Text: "bob", SlotName: "name"}),
		"ent without slot": chunk(Chunk{Text: "bob", Entity: "name"}),
		"undeclared":       chunk(Chunk{Text: "bob", Entity: "name", SlotName: "name"}),
		"other builtin":    chunk(Chunk{Text: "today", Entity: "snips/datetime", SlotName: "when"}),
		"empty value":      chunk(Chunk{Text: " ", Entity: BuiltinNumber, SlotName: "n"}),
	} {
		err := tc.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, name)
		assert.NotEmpty(t, verr.Error(), name)
	}

	ok := chunk(Chunk{Text: "5", Entity: BuiltinNumber, SlotName: "n"})
	require.NoError(t, ok.Validate())
}

func TestValidateSlotEntityConflict(t *testing.T) {
	d := &Dataset{
		Language: "en",
		Intents: map[string]Intent{"roll": {Utterances: []Utterance{
			{Data: []Chunk{{Text: "5", Entity: BuiltinNumber, SlotName: "n"}}},
			{Data: []Chunk{{Text: "str", Entity: "ability", SlotName: "n"}}},
		}}},
		Entities: map[string]Entity{"ability": {Data: []EntityValue{{Value: "strength"}}}},
	}
	var verr *ValidationError
	require.ErrorAs(t, d.Validate(), &verr)
	assert.Equal(t, "roll", verr.Intent)
	assert.Equal(t, 1, verr.Utterance)
}

func TestFormat(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	d.Intents["rollAbility"].Utterances[0].Data[1].Text = "Wisdom"

	f, err := d.Format()
	require.NoError(t, err)

	values := f.Entities["ability"].Data
	require.Len(t, values, 3)
	assert.Equal(t, "Wisdom", values[2].Value)
	assert.Equal(t, []string{"str"}, values[0].Synonyms)

	// "dex" is a synonym, not a new value
	for _, v := range values {
		assert.NotEqual(t, "dex", v.Value)
	}
	// the source is left untouched
	assert.Len(t, d.Entities["ability"].Data, 2)
}

func TestFormatDropsSynonyms(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	e := d.Entities["ability"]
	e.UseSynonyms = false
	d.Entities["ability"] = e

	f, err := d.Format()
	require.NoError(t, err)
	for _, v := range f.Entities["ability"].Data {
		assert.Empty(t, v.Synonyms)
	}
	// "dex" no longer resolves through a synonym, so it is learned as a value
	assert.Equal(t, "dex", f.Entities["ability"].Data[len(f.Entities["ability"].Data)-1].Value)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	d, err := LoadFile(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, d.WriteJSON(&buf))
	d2, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, d2)
}

func TestParseUtterance(t *testing.T) {
	u := parseUtterance("roll [count](two) dice with [ability:ability](dex)", map[string]string{"count": BuiltinNumber})
	assert.Equal(t, []Chunk{
		{Text: "roll "},
		{Text: "two", Entity: BuiltinNumber, SlotName: "count"},
		{Text: " dice with "},
		{Text: "dex", Entity: "ability", SlotName: "ability"},
	}, u.Data)
	assert.Equal(t, "roll two dice with dex", u.Text())
}

func TestParseYAML(t *testing.T) {
	src := `
type: intent
name: greet
utterances:
  - hello [name:person](bob)
---
type: entity
name: person
values:
  - bob
  - [robert, rob]
`
	d, err := ParseYAML("en", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"greet"}, d.IntentNames())
	e := d.Entities["person"]
	assert.True(t, e.AutomaticallyExtensible)
	assert.True(t, e.UseSynonyms)
	assert.Equal(t, []EntityValue{{Value: "bob"}, {Value: "robert", Synonyms: []string{"rob"}}}, e.Data)
}

func TestParseYAMLUnknownType(t *testing.T) {
	_, err := ParseYAML("en", strings.NewReader("type: slot\nname: x\n"))
	require.Error(t, err)
}

func TestGenerateDataset(t *testing.T) {
	d, err := GenerateDataset("en", filepath.Join("testdata", "**", "*.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"rollAbility", "rollDice"}, d.IntentNames())
	assert.Equal(t, map[string]string{"ability": "ability"}, d.SlotEntities("rollAbility"))
	assert.False(t, d.Entities["ability"].AutomaticallyExtensible)
	assert.Len(t, d.Entities["ability"].Data, 3)
}

func TestGenerateDatasetNoMatch(t *testing.T) {
	_, err := GenerateDataset("en", filepath.Join("testdata", "nothing", "*.yaml"))
	require.Error(t, err)
}
