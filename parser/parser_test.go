package parser

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/net/voting"
	"github.com/neurlang/nlu/trainer"
)

func dataset(t *testing.T) (*intents.Dataset, *Gazetteer) {
	t.Helper()
	d, err := intents.LoadFile(filepath.Join("testdata", "dataset.json"))
	require.NoError(t, err)
	d, err = d.Format()
	require.NoError(t, err)
	return d, NewGazetteer(d)
}

func probabilistic(t *testing.T) *Probabilistic {
	t.Helper()
	d, g := dataset(t)
	premodulos, err := trainer.Primes(60000, 5)
	require.NoError(t, err)

	names := d.IntentNames()
	classifier, err := voting.New(uint16(len(names)+1), premodulos)
	require.NoError(t, err)
	require.NoError(t, classifier.Train(IntentSamples(d, g, names), 2))

	var slotNames [][]string
	var entities []map[string]string
	var fillers []*voting.Network
	for _, name := range names {
		slots := d.SlotNames(name)
		slotNames = append(slotNames, slots)
		entities = append(entities, d.SlotEntities(name))
		if len(slots) == 0 {
			fillers = append(fillers, nil)
			continue
		}
		filler, err := voting.New(uint16(len(slots)+1), premodulos)
		require.NoError(t, err)
		require.NoError(t, filler.Train(SlotSamples(d, g, name, slots), 2))
		fillers = append(fillers, filler)
	}
	p, err := NewProbabilistic(g, names, slotNames, entities, classifier, fillers, 0, 0)
	require.NoError(t, err)
	return p
}

func TestGazetteerResolve(t *testing.T) {
	_, g := dataset(t)

	v, ok := g.Resolve("ability", "STR")
	require.True(t, ok)
	assert.Equal(t, Value{Kind: KindCustom, Value: "strength"}, v)

	_, ok = g.Resolve("ability", "wisdom")
	assert.False(t, ok)

	v, ok = g.Resolve("weapon", "Long Sword")
	require.True(t, ok)
	assert.Equal(t, "longsword", v.Value)

	v, ok = g.Resolve("weapon", " war hammer ")
	require.True(t, ok)
	assert.Equal(t, "war hammer", v.Value)

	v, ok = g.Resolve(intents.BuiltinNumber, "12")
	require.True(t, ok)
	assert.Equal(t, Value{Kind: KindNumber, Value: 12.0}, v)

	_, ok = g.Resolve(intents.BuiltinNumber, "12 dice")
	assert.False(t, ok)

	_, ok = g.Resolve("planet", "mars")
	assert.False(t, ok)
}

func TestGazetteerFind(t *testing.T) {
	_, g := dataset(t)
	matches := g.Find([]string{"swing", "long", "sword", "and", "roll", "7", "dex"})
	require.Len(t, matches, 3)
	assert.Equal(t, Match{Entity: "weapon", Start: 1, End: 3, Value: Value{Kind: KindCustom, Value: "longsword"}}, matches[0])
	assert.Equal(t, intents.BuiltinNumber, matches[1].Entity)
	assert.Equal(t, 5, matches[1].Start)
	assert.Equal(t, "ability", matches[2].Entity)
	assert.Equal(t, "dexterity", matches[2].Value.Value)
}

func TestShape(t *testing.T) {
	assert.Equal(t, "0", shape("42"))
	assert.Equal(t, "x0", shape("2d8"))
	assert.Equal(t, "XX", shape("STR"))
	assert.Equal(t, "Xx", shape("Roll"))
	assert.Equal(t, "xX", shape("iPhone"))
	assert.Equal(t, "x", shape("dice"))
}

func TestSlotSamples(t *testing.T) {
	d, g := dataset(t)
	samples := SlotSamples(d, g, "rollAbility", []string{"ability"})
	var labels []uint16
	for _, s := range samples {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []uint16{0, 1, 0, 0, 0, 1, 0, 0, 0, 1}, labels)
	assert.Contains(t, samples[1].Features, "e:ability")
}

func TestIntentSamples(t *testing.T) {
	d, g := dataset(t)
	samples := IntentSamples(d, g, d.IntentNames())
	require.Len(t, samples, 11)
	assert.Equal(t, uint16(1), samples[0].Label)
	assert.Contains(t, samples[0].Features, "b:roll_strength")
	assert.Contains(t, samples[0].Features, "e:ability")
}

func TestDeterministic(t *testing.T) {
	d, g := dataset(t)
	p := NewDeterministic(d, g, 0)
	assert.Equal(t, 11, p.Len())

	r, ok := p.Parse("Make a STR check!")
	require.True(t, ok)
	require.NotNil(t, r.Intent)
	assert.Equal(t, IntentResult{IntentName: "rollAbility", Probability: 1}, *r.Intent)
	require.Len(t, r.Slots, 1)
	assert.Equal(t, Slot{
		Range:    Range{Start: 7, End: 10},
		RawValue: "STR",
		Value:    Value{Kind: KindCustom, Value: "strength"},
		Entity:   "ability",
		SlotName: "ability",
	}, r.Slots[0])

	r, ok = p.Parse("roll 12 dice")
	require.True(t, ok)
	assert.Equal(t, "rollDice", r.Intent.IntentName)
	assert.Equal(t, 12.0, r.Slots[0].Value.Value)

	r, ok = p.Parse("swing the war hammer at it")
	require.True(t, ok)
	assert.Equal(t, "war hammer", r.Slots[0].Value.Value)
	assert.Equal(t, "war hammer", r.Slots[0].RawValue)

	r, ok = p.Parse("what can you do")
	require.True(t, ok)
	assert.Equal(t, "showHelp", r.Intent.IntentName)
	assert.Empty(t, r.Slots)
}

func TestDeterministicRangeInCharacters(t *testing.T) {
	d, g := dataset(t)
	p := NewDeterministic(d, g, 0)
	r, ok := p.Parse("« roll 12 dice »")
	require.True(t, ok)
	assert.Equal(t, "rollDice", r.Intent.IntentName)
	require.Len(t, r.Slots, 1)
	assert.Equal(t, Range{Start: 7, End: 9}, r.Slots[0].Range)
	assert.Equal(t, "12", r.Slots[0].RawValue)
}

func TestDeterministicNoMatch(t *testing.T) {
	d, g := dataset(t)
	p := NewDeterministic(d, g, 0)

	// ability is not automatically extensible
	r, ok := p.Parse("roll wisdom check")
	assert.False(t, ok)
	assert.Nil(t, r.Intent)
	assert.NotNil(t, r.Slots)

	_, ok = p.Parse("help", "rollDice")
	assert.False(t, ok)
	_, ok = p.Parse("help", "showHelp")
	assert.True(t, ok)

	_, ok = p.Parse("")
	assert.False(t, ok)
}

func TestDeterministicExtensibleSlotOnly(t *testing.T) {
	d, err := (&intents.Dataset{
		Language: "en",
		Intents: map[string]intents.Intent{
			"pickWeapon": {Utterances: []intents.Utterance{
				{Data: []intents.Chunk{{Text: "longsword", Entity: "weapon", SlotName: "weapon"}}},
				{Data: []intents.Chunk{{Text: "pick the "}, {Text: "axe", Entity: "weapon", SlotName: "weapon"}}},
			}},
			"pickAbility": {Utterances: []intents.Utterance{
				{Data: []intents.Chunk{{Text: "dex", Entity: "ability", SlotName: "ability"}}},
			}},
			"showHelp": {Utterances: []intents.Utterance{{Data: []intents.Chunk{{Text: "help"}}}}},
		},
		Entities: map[string]intents.Entity{
			"weapon":  {UseSynonyms: true, AutomaticallyExtensible: true},
			"ability": {UseSynonyms: true, Data: []intents.EntityValue{{Value: "dexterity", Synonyms: []string{"dex"}}}},
		},
	}).Format()
	require.NoError(t, err)
	p := NewDeterministic(d, NewGazetteer(d), 0)
	assert.Equal(t, 3, p.Len())

	for _, input := range []string{"what is the weather in paris today", "please tell me a joke", "longsword"} {
		r, ok := p.Parse(input)
		assert.False(t, ok, input)
		assert.Nil(t, r.Intent, input)
	}

	r, ok := p.Parse("pick the war hammer")
	require.True(t, ok)
	assert.Equal(t, "pickWeapon", r.Intent.IntentName)
	assert.Equal(t, "war hammer", r.Slots[0].Value.Value)

	// a lone slot of a closed entity still matches its known values only
	r, ok = p.Parse("DEX")
	require.True(t, ok)
	assert.Equal(t, "pickAbility", r.Intent.IntentName)
	_, ok = p.Parse("wisdom")
	assert.False(t, ok)
}

func TestDeterministicMaxSlotSpan(t *testing.T) {
	d, g := dataset(t)
	p := NewDeterministic(d, g, 1)
	_, ok := p.Parse("swing the war hammer at it")
	assert.False(t, ok)
}

func TestProbabilisticIntent(t *testing.T) {
	p := probabilistic(t)

	r := p.Parse("please throw 7 dice")
	require.NotNil(t, r.Intent)
	assert.Equal(t, "rollDice", r.Intent.IntentName)
	assert.GreaterOrEqual(t, r.Intent.Probability, DefaultMinProbability)
	assert.LessOrEqual(t, r.Intent.Probability, 1.0)
	require.Len(t, r.Slots, 1)
	assert.Equal(t, "count", r.Slots[0].SlotName)
	assert.Equal(t, 7.0, r.Slots[0].Value.Value)
	assert.Equal(t, Range{Start: 13, End: 14}, r.Slots[0].Range)

	r = p.Parse("can you show me what commands you have")
	require.NotNil(t, r.Intent)
	assert.Equal(t, "showHelp", r.Intent.IntentName)
	assert.Empty(t, r.Slots)
}

func TestProbabilisticFilter(t *testing.T) {
	p := probabilistic(t)
	r := p.Parse("please throw 7 dice", "showHelp", "rollAttack")
	if r.Intent != nil {
		assert.Contains(t, []string{"showHelp", "rollAttack"}, r.Intent.IntentName)
	}

	r = p.Parse("please throw 7 dice", "nothing")
	assert.Nil(t, r.Intent)
}

func TestProbabilisticGetIntents(t *testing.T) {
	p := probabilistic(t)
	ranked := p.GetIntents("throw 7 dice")
	require.Len(t, ranked, 4)
	assert.Equal(t, "rollDice", ranked[0].IntentName)
	var sum float64
	for i, r := range ranked {
		sum += r.Probability
		if i > 0 {
			assert.LessOrEqual(t, r.Probability, ranked[i-1].Probability)
		}
	}
	assert.LessOrEqual(t, sum, 1.0+1e-9)
}

func TestProbabilisticOffTopic(t *testing.T) {
	p := probabilistic(t)
	for _, input := range []string{
		"the weather in paris is nice today",
		"please tell me a joke",
	} {
		r := p.Parse(input)
		assert.Nil(t, r.Intent, input)
		assert.Empty(t, r.Slots, input)
		for _, ranked := range p.GetIntents(input) {
			assert.Less(t, ranked.Probability, DefaultMinProbability, input)
		}
	}
}

func TestProbabilisticGetSlots(t *testing.T) {
	p := probabilistic(t)
	slots, err := p.GetSlots("make a cha check", "rollAbility")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "charisma", slots[0].Value.Value)

	slots, err = p.GetSlots("make a cha check", "showHelp")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = p.GetSlots("help", "nothing")
	assert.Error(t, err)
}

func TestNewProbabilisticMismatch(t *testing.T) {
	_, g := dataset(t)
	_, err := NewProbabilistic(g, []string{"a"}, nil, nil, nil, nil, 0, 0)
	assert.Error(t, err)
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(Empty("hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"hi","intent":null,"slots":[]}`, string(data))

	data, err = json.Marshal(Result{
		Input:  "roll 2 dice",
		Intent: &IntentResult{IntentName: "rollDice", Probability: 1},
		Slots: []Slot{{Range: Range{5, 6}, RawValue: "2", Value: Value{Kind: KindNumber, Value: 2.0},
			Entity: intents.BuiltinNumber, SlotName: "count"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"roll 2 dice","intent":{"intentName":"rollDice","probability":1},
		"slots":[{"range":{"start":5,"end":6},"rawValue":"2","value":{"kind":"Number","value":2},
		"entity":"snips/number","slotName":"count"}]}`, string(data))
}
