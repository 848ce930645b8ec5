// Package classifier wraps the serialized classification artifact produced
// by the offline training pipeline. The artifact is a linear model over a
// bag-of-words vocabulary, exported to JSON so the serving path has no
// dependency on the training stack.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// artifact is the on-disk JSON layout of a trained model.
type artifact struct {
	ModelVersion string             `json:"model_version"`
	Labels       []string           `json:"labels"`
	Bias         float64            `json:"bias"`
	Weights      map[string]float64 `json:"weights"`
	// HasProbability is false for exports whose underlying estimator does
	// not expose probability estimates; Predict then reports no confidence.
	HasProbability bool `json:"has_probability"`
}

// Classifier scores article text as REAL or FAKE.
type Classifier struct {
	version        string
	negLabel       string // decision score < 0
	posLabel       string // decision score >= 0
	bias           float64
	weights        map[string]float64
	hasProbability bool
}

// Load reads and validates a model artifact. Called once at startup;
// a load failure is fatal to the process.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if len(a.Labels) != 2 {
		return nil, fmt.Errorf("model artifact must define exactly 2 labels, got %d", len(a.Labels))
	}
	if len(a.Weights) == 0 {
		return nil, fmt.Errorf("model artifact has an empty vocabulary")
	}

	return &Classifier{
		version:        a.ModelVersion,
		negLabel:       strings.ToUpper(a.Labels[0]),
		posLabel:       strings.ToUpper(a.Labels[1]),
		bias:           a.Bias,
		weights:        a.Weights,
		hasProbability: a.HasProbability,
	}, nil
}

// Version returns the artifact's model version string.
func (c *Classifier) Version() string {
	return c.version
}

// Predict classifies the combined title and body text. The returned
// confidence is the model's probability for the chosen label, or nil when
// the artifact does not support probability estimates.
func (c *Classifier) Predict(title, text string) (label string, confidence *float64) {
	score := c.bias
	for _, tok := range Tokenize(title + " " + text) {
		score += c.weights[tok]
	}

	p := sigmoid(score)
	if p >= 0.5 {
		label = c.posLabel
	} else {
		label = c.negLabel
	}

	if !c.hasProbability {
		return label, nil
	}

	conf := math.Max(p, 1-p)
	return label, &conf
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
