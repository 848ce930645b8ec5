package classifier

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

const testArtifact = `{
	"model_version": "v1_ensemble",
	"labels": ["fake", "real"],
	"bias": 0.5,
	"weights": {"official": 2.0, "hoax": -3.0},
	"has_probability": true
}`

func TestLoad_ValidArtifact(t *testing.T) {
	clf, err := Load(writeArtifact(t, testArtifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if clf.Version() != "v1_ensemble" {
		t.Errorf("version = %q, want v1_ensemble", clf.Version())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

func TestLoad_WrongLabelCount(t *testing.T) {
	artifact := `{"labels": ["a"], "weights": {"x": 1.0}}`
	if _, err := Load(writeArtifact(t, artifact)); err == nil {
		t.Fatal("expected error for single-label artifact")
	}
}

func TestLoad_EmptyVocabulary(t *testing.T) {
	artifact := `{"labels": ["fake", "real"], "weights": {}}`
	if _, err := Load(writeArtifact(t, artifact)); err == nil {
		t.Fatal("expected error for empty vocabulary")
	}
}

func TestPredict_PositiveScore(t *testing.T) {
	clf, err := Load(writeArtifact(t, testArtifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// tokens: official, statement, official -> score = 0.5 + 2.0 + 0 + 2.0 = 4.5
	label, conf := clf.Predict("Official statement", "official")
	if label != "REAL" {
		t.Errorf("label = %q, want REAL", label)
	}
	if conf == nil {
		t.Fatal("expected confidence, got nil")
	}
	// sigmoid(4.5) ~= 0.989
	if !almostEqual(*conf, 0.989, 0.001) {
		t.Errorf("confidence = %.4f, want ~0.989", *conf)
	}
}

func TestPredict_NegativeScore(t *testing.T) {
	clf, err := Load(writeArtifact(t, testArtifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// tokens: hoax, hoax -> score = 0.5 - 3.0 - 3.0 = -5.5
	label, conf := clf.Predict("hoax", "hoax")
	if label != "FAKE" {
		t.Errorf("label = %q, want FAKE", label)
	}
	if conf == nil {
		t.Fatal("expected confidence, got nil")
	}
	// probability for the chosen label = 1 - sigmoid(-5.5) ~= 0.996
	if !almostEqual(*conf, 0.996, 0.001) {
		t.Errorf("confidence = %.4f, want ~0.996", *conf)
	}
}

func TestPredict_ConfidenceAtLeastHalf(t *testing.T) {
	clf, err := Load(writeArtifact(t, testArtifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Unknown tokens only -> score = bias, still a valid in-range confidence.
	label, conf := clf.Predict("completely", "unseen words")
	if label != "REAL" && label != "FAKE" {
		t.Errorf("label = %q, want REAL or FAKE", label)
	}
	if conf == nil {
		t.Fatal("expected confidence, got nil")
	}
	if *conf < 0.5 || *conf > 1.0 {
		t.Errorf("confidence = %.4f, want in [0.5, 1.0]", *conf)
	}
}

func TestPredict_NoProbabilitySupport(t *testing.T) {
	artifact := `{
		"model_version": "v2_svm",
		"labels": ["fake", "real"],
		"weights": {"official": 2.0},
		"has_probability": false
	}`
	clf, err := Load(writeArtifact(t, artifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	label, conf := clf.Predict("official", "news")
	if label != "REAL" {
		t.Errorf("label = %q, want REAL", label)
	}
	if conf != nil {
		t.Errorf("expected nil confidence for non-probabilistic model, got %.4f", *conf)
	}
}

func TestPredict_LabelsUppercased(t *testing.T) {
	clf, err := Load(writeArtifact(t, testArtifact))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	label, _ := clf.Predict("hoax hoax hoax", "")
	if label != "FAKE" {
		t.Errorf("label = %q, want uppercase FAKE", label)
	}
}

func almostEqual(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
