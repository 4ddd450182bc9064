package engine

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/logger"
	"github.com/neurlang/nlu/net/voting"
	"github.com/neurlang/nlu/parser"
)

// ModelVersion is the version of the model directory layout
const ModelVersion = "0.1.0"

// ErrModelVersion is returned when loading a model of another layout version
var ErrModelVersion = errors.New("unsupported model version")

const (
	manifestFile   = "manifest.json"
	datasetFile    = "dataset.json"
	classifierFile = "intent_classifier.json.lzw"
)

func fillerFile(intent int) string {
	return "slot_filler_" + strconv.Itoa(intent) + ".json.lzw"
}

// Manifest describes a persisted model
type Manifest struct {
	ModelVersion    string    `json:"model_version"`
	ModelID         uuid.UUID `json:"model_id"`
	Language        string    `json:"language"`
	Intents         []string  `json:"intents"`
	Config          Config    `json:"config"`
	TrainingSuccess int       `json:"training_success"`
	Digest          string    `json:"digest"`
	Created         time.Time `json:"created"`
}

func hexDigest(sum [32]byte) string {
	return hex.EncodeToString(sum[:])
}

func writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, append(data, '\n'), 0o644)
}

func readJSON(name string, v any) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Persist writes the model to dir. The model is written to a temporary directory
// next to dir which then replaces dir, so dir holds either the previous model or
// the complete new one.
func (e *Engine) Persist(dir string) (err error) {
	if !e.Fitted() {
		return ErrNotFitted
	}
	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return errors.Wrap(err, "create model parent")
	}
	tmp, err := os.MkdirTemp(parent, ".model-*")
	if err != nil {
		return errors.Wrap(err, "create temporary model dir")
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	if err = writeJSON(filepath.Join(tmp, datasetFile), e.dataset); err != nil {
		return errors.Wrap(err, "write dataset")
	}
	if err = e.classifier.WriteCompressedWeightsToFile(filepath.Join(tmp, classifierFile)); err != nil {
		return errors.Wrap(err, "write intent classifier")
	}
	for i, f := range e.fillers {
		if f == nil || !f.Trained() {
			continue
		}
		if err = f.WriteCompressedWeightsToFile(filepath.Join(tmp, fillerFile(i))); err != nil {
			return errors.Wrapf(err, "write slot filler of %s", e.names[i])
		}
	}
	// the manifest goes last, a model dir without one is incomplete
	if err = writeJSON(filepath.Join(tmp, manifestFile), e.manifest); err != nil {
		return errors.Wrap(err, "write manifest")
	}
	if err = os.Chmod(tmp, 0o755); err != nil {
		return errors.Wrap(err, "chmod model dir")
	}
	if err = os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "remove previous model")
	}
	if err = os.Rename(tmp, dir); err != nil {
		return errors.Wrap(err, "move model into place")
	}
	logger.Logger.Infow("Persisted model", "dir", dir, "model_id", e.manifest.ModelID)
	return nil
}

// Load reads a model written by Persist
func Load(dir string) (*Engine, error) {
	var m Manifest
	if err := readJSON(filepath.Join(dir, manifestFile), &m); err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	if m.ModelVersion != ModelVersion {
		return nil, errors.Wrapf(ErrModelVersion, "%q, want %q", m.ModelVersion, ModelVersion)
	}
	var d intents.Dataset
	if err := readJSON(filepath.Join(dir, datasetFile), &d); err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	names := d.IntentNames()
	if len(names) != len(m.Intents) {
		return nil, errors.Errorf("manifest lists %d intents, dataset has %d", len(m.Intents), len(names))
	}
	for i := range names {
		if names[i] != m.Intents[i] {
			return nil, errors.Errorf("manifest intent %q does not match dataset intent %q", m.Intents[i], names[i])
		}
	}

	cfg := m.Config
	cfg.Threads = 0
	e := New(cfg)
	classifier, err := voting.ReadCompressedWeightsFromFile(filepath.Join(dir, classifierFile))
	if err != nil {
		return nil, errors.Wrap(err, "read intent classifier")
	}
	g := parser.NewGazetteer(&d)
	var slotNames = make([][]string, len(names))
	var entities = make([]map[string]string, len(names))
	var fillers = make([]*voting.Network, len(names))
	for i, name := range names {
		slotNames[i] = d.SlotNames(name)
		entities[i] = d.SlotEntities(name)
		if len(slotNames[i]) == 0 {
			continue
		}
		fillers[i], err = voting.ReadCompressedWeightsFromFile(filepath.Join(dir, fillerFile(i)))
		if errors.Is(err, os.ErrNotExist) {
			// the utterances of the intent have no words to learn slots from
			fillers[i], err = voting.New(uint16(len(slotNames[i])+1), []uint32{1})
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read slot filler of %s", name)
		}
	}
	probabilistic, err := parser.NewProbabilistic(g, names, slotNames, entities, classifier, fillers,
		e.config.MaxSlotSpan, e.config.MinProbability)
	if err != nil {
		return nil, err
	}

	e.dataset = &d
	e.names = names
	e.gazetteer = g
	e.deterministic = parser.NewDeterministic(&d, g, e.config.MaxSlotSpan)
	e.probabilistic = probabilistic
	e.classifier = classifier
	e.fillers = fillers
	e.manifest = m
	logger.Logger.Debugw("Loaded model", "dir", dir, "model_id", m.ModelID, "intents", len(names))
	return e, nil
}
