package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	redis "github.com/redis/go-redis/v9"

	"podscribe/internal/artifacts"
	"podscribe/internal/config"
	"podscribe/internal/diarize"
	"podscribe/internal/jobs"
	"podscribe/internal/llm"
	"podscribe/internal/logger"
	"podscribe/internal/media"
	"podscribe/internal/pipeline"
	"podscribe/internal/stt"
	"podscribe/internal/summarize"
	"podscribe/internal/transcribe"
	"podscribe/internal/watcher"
	"podscribe/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	watch := flag.Bool("watch", false, "watch the input directory instead of processing arguments")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "podscribe starting (%s/%s, %d CPUs)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	runner, err := buildRunner(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	if *watch {
		runWatch(ctx, cfg, log, runner)
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: podscribe [-config config.yaml] <media files...> | -watch")
		os.Exit(2)
	}
	runOnce(ctx, log, runner, files)
}

// buildRunner wires the full pipeline from configuration.
func buildRunner(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Runner, error) {
	exec := executor.New()
	prober := media.NewProber(exec)
	chunker := media.NewChunker(exec, log, cfg.Media.ChunkDurationSeconds, cfg.Media.SampleRate, cfg.Paths.Temp)
	sttClient := stt.NewWhisperX(cfg.STT.BaseURL, cfg.STT.Model, time.Duration(cfg.STT.TimeoutSeconds)*time.Second)

	diarizer := buildDiarizer(ctx, cfg, log)
	transcriber := transcribe.New(prober, chunker, sttClient, diarizer, cfg, log)

	summarizer, err := buildSummarizer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	tracker := jobs.NewTracker(buildStore(ctx, cfg, log), log)
	writer := artifacts.New(log, cfg.Paths.Output)

	return pipeline.New(transcriber, summarizer, writer, tracker, cfg, log), nil
}

// buildDiarizer soft-disables diarization when no token is configured:
// transcription still works, just without speaker labels.
func buildDiarizer(ctx context.Context, cfg *config.Config, log logger.Logger) diarize.Diarizer {
	if !cfg.Diarization.Enabled {
		return diarize.Noop{}
	}
	if cfg.Diarization.Token == "" {
		log.Warn(ctx, "Diarization enabled but no token configured, speaker labels disabled")
		return diarize.Noop{}
	}
	return diarize.NewClient(cfg.Diarization.BaseURL, cfg.Diarization.Token,
		time.Duration(cfg.Diarization.TimeoutSeconds)*time.Second)
}

func buildSummarizer(ctx context.Context, cfg *config.Config, log logger.Logger) (summarize.Summarizer, error) {
	if len(cfg.LLM.APIKeys) == 0 {
		log.Warn(ctx, "No LLM API keys configured, summarization disabled")
		return nil, nil
	}

	var client llm.Client
	switch cfg.LLM.Provider {
	case "gemini":
		c, err := llm.NewGemini(cfg.LLM.APIKeys, cfg.LLM.Model, log)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		client = c
	default:
		client = llm.NewOpenAI(llm.OpenAIOptions{
			BaseURL:    cfg.LLM.BaseURL,
			APIKey:     cfg.LLM.APIKeys[0],
			Model:      cfg.LLM.Model,
			Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
			RetryCount: cfg.LLM.RetryCount,
		}, log)
	}

	return summarize.New(client, cfg, log), nil
}

func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) jobs.Store {
	if cfg.Redis.Addr == "" {
		return jobs.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn(ctx, "Redis unavailable at %s, falling back to in-memory job store: %v", cfg.Redis.Addr, err)
		return jobs.NewMemoryStore()
	}
	log.Info(ctx, "Using Redis job store at %s", cfg.Redis.Addr)
	return jobs.NewRedisStore(client, cfg.Redis.Prefix)
}

// runOnce processes the given files serially and exits non-zero if any
// job failed.
func runOnce(ctx context.Context, log logger.Logger, runner pipeline.Runner, files []string) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, file := range files {
		job, err := runner.Run(ctx, file)
		if err != nil {
			log.Error(ctx, "Job for %s failed: %v", file, err)
			failed++
			continue
		}
		log.Info(ctx, "Job %s finished: %s", job.ID, job.Status)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runWatch(ctx context.Context, cfg *config.Config, log logger.Logger, runner pipeline.Runner) {
	handler := func(ctx context.Context, filePath string) error {
		_, err := runner.Run(ctx, filePath)
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrentJobs)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching %s, writing artifacts to %s. Press Ctrl+C to stop", cfg.Paths.Input, cfg.Paths.Output)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "podscribe stopped")
}

func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Temp} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
