package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				STT: STTConfig{
					BaseURL: "http://localhost:9000",
				},
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing stt base url",
			config: Config{
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing output path",
			config: Config{
				STT: STTConfig{
					BaseURL: "http://localhost:9000",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown llm provider",
			config: Config{
				STT: STTConfig{
					BaseURL: "http://localhost:9000",
				},
				LLM: LLMConfig{
					Provider: "anthropic",
				},
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "diarization enabled without base url",
			config: Config{
				STT: STTConfig{
					BaseURL: "http://localhost:9000",
				},
				Diarization: DiarizationConfig{
					Enabled: true,
				},
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		STT:   STTConfig{BaseURL: "http://localhost:9000"},
		Paths: PathsConfig{Output: "data/output"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Media.ChunkDurationSeconds != 60 {
		t.Errorf("ChunkDurationSeconds = %v, want 60", cfg.Media.ChunkDurationSeconds)
	}
	if cfg.Summarize.ChunkSize != 100000 {
		t.Errorf("ChunkSize = %v, want 100000", cfg.Summarize.ChunkSize)
	}
	if cfg.Summarize.Overlap != 300 {
		t.Errorf("Overlap = %v, want 300", cfg.Summarize.Overlap)
	}
	if cfg.Performance.TranscribeWorkers != 4 {
		t.Errorf("TranscribeWorkers = %v, want 4", cfg.Performance.TranscribeWorkers)
	}
	if cfg.Performance.SummarizeWorkers != 5 {
		t.Errorf("SummarizeWorkers = %v, want 5", cfg.Performance.SummarizeWorkers)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %v, want openai", cfg.LLM.Provider)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
stt:
  base_url: "http://localhost:9000"
  model: "large-v3"
  align: true

llm:
  provider: "openai"
  base_url: "https://api.302.ai"
  api_keys:
    - "test-key"

media:
  chunk_duration_seconds: 90

paths:
  output: "data/output"

logging:
  level: "info"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.STT.Model != "large-v3" {
		t.Errorf("Model = %v, want %v", cfg.STT.Model, "large-v3")
	}
	if !cfg.STT.Align {
		t.Error("Align = false, want true")
	}
	if cfg.Media.ChunkDurationSeconds != 90 {
		t.Errorf("ChunkDurationSeconds = %v, want 90", cfg.Media.ChunkDurationSeconds)
	}
	if cfg.Paths.Output != "data/output" {
		t.Errorf("Output = %v, want %v", cfg.Paths.Output, "data/output")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
