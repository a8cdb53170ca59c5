package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFrom_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"search": {"defaultLimit": 3},
		"server": {"port": 9090}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Search.DefaultLimit != 3 {
		t.Errorf("expected overridden limit 3, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected overridden port 9090, got %d", cfg.Server.Port)
	}
	// Untouched sections keep defaults.
	if cfg.Training.LearningRate != Default().Training.LearningRate {
		t.Errorf("expected default learning rate, got %f", cfg.Training.LearningRate)
	}
	if cfg.Search.ConfidenceHigh != Default().Search.ConfidenceHigh {
		t.Errorf("expected default confidence threshold, got %f", cfg.Search.ConfidenceHigh)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"limit":         `{"search": {"defaultLimit": 0}}`,
		"thresholds":    `{"search": {"confidenceHigh": 0.4, "confidenceMedium": 0.5}}`,
		"boost":         `{"search": {"stateBoost": 0.9}}`,
		"learning rate": `{"training": {"learningRate": 1.5}}`,
		"weight bounds": `{"training": {"weightFloor": 0.8, "weightCeiling": 0.7}}`,
		"port":          `{"server": {"port": 70000}}`,
	}

	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Search.DefaultLimit = 7
	cfg.Database.Path = "/tmp/custom.db"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Search.DefaultLimit != 7 {
		t.Errorf("expected limit 7, got %d", loaded.Search.DefaultLimit)
	}
	if loaded.Database.Path != "/tmp/custom.db" {
		t.Errorf("expected custom db path, got %q", loaded.Database.Path)
	}
}

func TestRetrieverConfig_Mapping(t *testing.T) {
	cfg := Default()
	cfg.Search.StateBoost = 1.5
	cfg.Search.ConfidenceHigh = 0.9

	rc := cfg.RetrieverConfig()

	if rc.Boosts.State != 1.5 {
		t.Errorf("expected state boost 1.5, got %f", rc.Boosts.State)
	}
	if rc.Thresholds.High != 0.9 {
		t.Errorf("expected high threshold 0.9, got %f", rc.Thresholds.High)
	}
	if rc.CorrectionBoost != cfg.Search.CorrectionBoost {
		t.Errorf("expected correction boost carried over, got %f", rc.CorrectionBoost)
	}
}
