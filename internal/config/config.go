package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	STT         STTConfig         `yaml:"stt"`
	LLM         LLMConfig         `yaml:"llm"`
	Diarization DiarizationConfig `yaml:"diarization"`
	Media       MediaConfig       `yaml:"media"`
	Summarize   SummarizeConfig   `yaml:"summarize"`
	Paths       PathsConfig       `yaml:"paths"`
	Redis       RedisConfig       `yaml:"redis"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type STTConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	BatchSize      int    `yaml:"batch_size"`
	Align          bool   `yaml:"align"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LLMConfig struct {
	Provider       string   `yaml:"provider"` // "openai" or "gemini"
	BaseURL        string   `yaml:"base_url"`
	APIKeys        []string `yaml:"api_keys"`
	Model          string   `yaml:"model"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	RetryCount     int      `yaml:"retry_count"`
}

type DiarizationConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MediaConfig struct {
	ChunkDurationSeconds float64 `yaml:"chunk_duration_seconds"`
	SampleRate           int     `yaml:"sample_rate"`
}

type SummarizeConfig struct {
	ChunkSize int    `yaml:"chunk_size"`
	Overlap   int    `yaml:"overlap"`
	Language  string `yaml:"language"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type RedisConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	TranscribeWorkers int `yaml:"transcribe_workers"`
	SummarizeWorkers  int `yaml:"summarize_workers"`
	MaxConcurrentJobs int `yaml:"max_concurrent_jobs"`
}

// Load reads a YAML config file, applies defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.STT.BaseURL == "" {
		return fmt.Errorf("stt.base_url is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.LLM.Provider != "" && c.LLM.Provider != "openai" && c.LLM.Provider != "gemini" {
		return fmt.Errorf("llm.provider must be \"openai\" or \"gemini\"")
	}
	if c.Diarization.Enabled && c.Diarization.BaseURL == "" {
		return fmt.Errorf("diarization.base_url is required when diarization is enabled")
	}

	if c.STT.Model == "" {
		c.STT.Model = "base"
	}
	if c.STT.BatchSize == 0 {
		c.STT.BatchSize = 16
	}
	if c.STT.TimeoutSeconds == 0 {
		c.STT.TimeoutSeconds = 300
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "chatgpt-4o-latest"
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.RetryCount == 0 {
		c.LLM.RetryCount = 3
	}
	if c.Diarization.TimeoutSeconds == 0 {
		c.Diarization.TimeoutSeconds = 600
	}
	if c.Media.ChunkDurationSeconds == 0 {
		c.Media.ChunkDurationSeconds = 60
	}
	if c.Media.SampleRate == 0 {
		c.Media.SampleRate = 16000
	}
	if c.Summarize.ChunkSize == 0 {
		c.Summarize.ChunkSize = 100000
	}
	if c.Summarize.Overlap == 0 {
		c.Summarize.Overlap = 300
	}
	if c.Summarize.Language == "" {
		c.Summarize.Language = "English"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "podscribe:job:"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.TranscribeWorkers == 0 {
		c.Performance.TranscribeWorkers = 4
	}
	if c.Performance.SummarizeWorkers == 0 {
		c.Performance.SummarizeWorkers = 5
	}
	if c.Performance.MaxConcurrentJobs == 0 {
		c.Performance.MaxConcurrentJobs = 2
	}

	return nil
}
