// Package engine trains, persists and runs the intent and slot parser.
//
// Fit trains on a dataset; Persist writes the trained engine to a model directory,
// replacing any previous model there whole; Load reads it back.
package engine

import (
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/hash"
	"github.com/neurlang/nlu/logger"
	"github.com/neurlang/nlu/net/voting"
	"github.com/neurlang/nlu/parallel"
	"github.com/neurlang/nlu/parser"
	"github.com/neurlang/nlu/trainer"
)

var (
	// ErrNotFitted is returned when an engine is used before Fit or Load
	ErrNotFitted = errors.New("engine is not fitted")
	// ErrUnknownIntent is returned when an intent name is not in the model
	ErrUnknownIntent = errors.New("unknown intent")
)

// Config is the training configuration of an engine
type Config struct {
	Heads          int     `json:"heads"`
	PremoduloFloor uint32  `json:"premodulo_floor"`
	Threads        int     `json:"threads"`
	Significance   byte    `json:"significance"`
	MaxSlotSpan    int     `json:"max_slot_span"`
	MinProbability float64 `json:"min_probability"`
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		Heads:          3,
		PremoduloFloor: 30011,
		Threads:        runtime.NumCPU(),
		MaxSlotSpan:    parser.DefaultMaxSlotSpan,
		MinProbability: parser.DefaultMinProbability,
	}
}

// Engine is an intent and slot parser
type Engine struct {
	config  Config
	dataset *intents.Dataset
	names   []string

	gazetteer     *parser.Gazetteer
	deterministic *parser.Deterministic
	probabilistic *parser.Probabilistic
	classifier    *voting.Network
	fillers       []*voting.Network

	manifest Manifest
}

// New creates an unfitted engine. Zero fields of cfg take their default.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Heads <= 0 {
		cfg.Heads = def.Heads
	}
	if cfg.PremoduloFloor == 0 {
		cfg.PremoduloFloor = def.PremoduloFloor
	}
	if cfg.Threads <= 0 {
		cfg.Threads = def.Threads
	}
	if cfg.MaxSlotSpan <= 0 {
		cfg.MaxSlotSpan = def.MaxSlotSpan
	}
	if cfg.MinProbability <= 0 {
		cfg.MinProbability = def.MinProbability
	}
	return &Engine{config: cfg}
}

// Config returns the configuration of the engine
func (e *Engine) Config() Config {
	return e.config
}

// Fitted reports whether the engine is trained
func (e *Engine) Fitted() bool {
	return e.probabilistic != nil
}

// Manifest describes the trained model
func (e *Engine) Manifest() Manifest {
	return e.manifest
}

// Intents returns the intent names of the model in sorted order
func (e *Engine) Intents() []string {
	return append([]string(nil), e.names...)
}

// Fit trains the engine on the dataset. On error the engine is left unchanged.
func (e *Engine) Fit(d *intents.Dataset) error {
	start := time.Now()
	formatted, err := d.Format()
	if err != nil {
		return err
	}
	names := formatted.IntentNames()
	if len(names) >= 1<<16-1 {
		return errors.Errorf("too many intents: %d", len(names))
	}
	premodulos, err := trainer.Primes(e.config.PremoduloFloor, e.config.Heads)
	if err != nil {
		return err
	}
	brand, avx512, cores := hash.CPU()
	logger.Logger.Debugw("Training on",
		"cpu", brand,
		"avx512", avx512,
		"cores", cores,
		"threads", e.config.Threads)

	g := parser.NewGazetteer(formatted)

	// network 0 classifies intents, network i+1 fills the slots of intent i
	var slotNames = make([][]string, len(names))
	var entities = make([]map[string]string, len(names))
	var networks = make([]*voting.Network, len(names)+1)
	var errs = make([]error, len(names)+1)
	parallel.ForEach(len(networks), e.config.Threads, func(n int) {
		var labels int
		var samples []voting.Sample
		if n == 0 {
			labels = len(names) + 1
			samples = parser.IntentSamples(formatted, g, names)
		} else {
			name := names[n-1]
			slotNames[n-1] = formatted.SlotNames(name)
			entities[n-1] = formatted.SlotEntities(name)
			if len(slotNames[n-1]) == 0 {
				return
			}
			labels = len(slotNames[n-1]) + 1
			samples = parser.SlotSamples(formatted, g, name, slotNames[n-1])
		}
		network, err := voting.New(uint16(labels), premodulos)
		if err != nil {
			errs[n] = err
			return
		}
		if err := network.Train(samples, 1); err != nil {
			errs[n] = err
			return
		}
		networks[n] = network
	})
	for n, err := range errs {
		if err == nil {
			continue
		}
		if n == 0 {
			return errors.Wrap(err, "train intent classifier")
		}
		return errors.Wrapf(err, "train slot filler of %s", names[n-1])
	}

	if !networks[0].Trained() {
		return errors.New("no utterance has words to train on")
	}

	probabilistic, err := parser.NewProbabilistic(g, names, slotNames, entities,
		networks[0], networks[1:], e.config.MaxSlotSpan, e.config.MinProbability)
	if err != nil {
		return err
	}

	e.dataset = formatted
	e.names = names
	e.gazetteer = g
	e.deterministic = parser.NewDeterministic(formatted, g, e.config.MaxSlotSpan)
	e.probabilistic = probabilistic
	e.classifier = networks[0]
	e.fillers = networks[1:]

	success, digest := e.evaluate()
	e.manifest = Manifest{
		ModelVersion:    ModelVersion,
		ModelID:         uuid.New(),
		Language:        formatted.Language,
		Intents:         names,
		Config:          e.config,
		TrainingSuccess: success,
		Digest:          digest,
		Created:         time.Now().UTC(),
	}
	logger.Logger.Infow("Trained",
		"intents", len(names),
		"patterns", e.deterministic.Len(),
		"heads", e.config.Heads,
		"success", success,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Parse extracts the intent and slots of the input. Only the given intents are
// considered, all when none are given.
func (e *Engine) Parse(input string, intents ...string) (parser.Result, error) {
	if !e.Fitted() {
		return parser.Result{}, ErrNotFitted
	}
	if err := e.checkIntents(intents...); err != nil {
		return parser.Result{}, err
	}
	if result, ok := e.deterministic.Parse(input, intents...); ok {
		return result, nil
	}
	return e.probabilistic.Parse(input, intents...), nil
}

// GetIntents returns the probability of every intent of the model, most probable first
func (e *Engine) GetIntents(input string) ([]parser.IntentResult, error) {
	if !e.Fitted() {
		return nil, ErrNotFitted
	}
	result, ok := e.deterministic.Parse(input)
	if !ok {
		return e.probabilistic.GetIntents(input), nil
	}
	var out = []parser.IntentResult{*result.Intent}
	for _, name := range e.names {
		if name != result.Intent.IntentName {
			out = append(out, parser.IntentResult{IntentName: name})
		}
	}
	return out, nil
}

// GetSlots extracts the slots of the input, assuming it is of the intent
func (e *Engine) GetSlots(input string, intent string) ([]parser.Slot, error) {
	if !e.Fitted() {
		return nil, ErrNotFitted
	}
	if err := e.checkIntents(intent); err != nil {
		return nil, err
	}
	if result, ok := e.deterministic.Parse(input, intent); ok {
		return result.Slots, nil
	}
	return e.probabilistic.GetSlots(input, intent)
}

func (e *Engine) checkIntents(intents ...string) error {
	for _, name := range intents {
		if indexOf(e.names, name) < 0 {
			return errors.Wrap(ErrUnknownIntent, name)
		}
	}
	return nil
}

// evaluate measures the intent accuracy on the training utterances
func (e *Engine) evaluate() (success int, digest string) {
	type utterance struct {
		text  string
		label uint16
	}
	var utterances []utterance
	for i, name := range e.names {
		for _, u := range e.dataset.Intents[name].Utterances {
			utterances = append(utterances, utterance{u.Text(), uint16(i + 1)})
		}
	}
	success, sum := trainer.Evaluate(len(utterances), e.config.Significance, e.config.Threads,
		func(i int) (predicted, expected uint16) {
			r := e.probabilistic.Parse(utterances[i].text)
			if r.Intent != nil {
				predicted = uint16(indexOf(e.names, r.Intent.IntentName) + 1)
			}
			return predicted, utterances[i].label
		})
	return success, hexDigest(sum)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
