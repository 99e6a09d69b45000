package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"podscribe/internal/transcript"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWhisperXTranscribe(t *testing.T) {
	var gotModel, gotLanguage, gotBatch string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %s, want /transcribe", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotBatch = r.FormValue("batch_size")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"language": "en",
			"segments": []map[string]interface{}{
				{"text": "hello", "start": 0.0, "end": 1.2},
				{"text": "world", "start": 1.2, "end": 2.0},
			},
		})
	}))
	defer srv.Close()

	client := NewWhisperX(srv.URL, "large-v3", 10*time.Second)
	result, err := client.Transcribe(context.Background(), writeTestAudio(t), Options{Language: "en", BatchSize: 16})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if gotModel != "large-v3" || gotLanguage != "en" || gotBatch != "16" {
		t.Errorf("form fields = (%s, %s, %s)", gotModel, gotLanguage, gotBatch)
	}
	if result.Language != "en" {
		t.Errorf("language = %s, want en", result.Language)
	}
	if len(result.Segments) != 2 || result.Segments[1].Text != "world" {
		t.Errorf("segments = %+v", result.Segments)
	}
}

func TestWhisperXTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWhisperX(srv.URL, "base", 10*time.Second)
	if _, err := client.Transcribe(context.Background(), writeTestAudio(t), Options{}); err == nil {
		t.Fatal("Transcribe() should return error on HTTP 500")
	}
}

func TestWhisperXAlign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/align" {
			t.Errorf("path = %s, want /align", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		var segs []transcript.Segment
		if err := json.Unmarshal([]byte(r.FormValue("segments")), &segs); err != nil {
			t.Errorf("segments field not valid JSON: %v", err)
		}
		if r.FormValue("language") != "en" {
			t.Errorf("language = %s, want en", r.FormValue("language"))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"segments": []map[string]interface{}{
				{
					"text": "hello", "start": 0.0, "end": 1.2,
					"words": []map[string]interface{}{
						{"word": "hello", "start": 0.1, "end": 1.1},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewWhisperX(srv.URL, "base", 10*time.Second)
	segments, err := client.Align(context.Background(),
		[]transcript.Segment{{Text: "hello", Start: 0, End: 1.2}},
		writeTestAudio(t), "en")
	if err != nil {
		t.Fatalf("Align() error = %v", err)
	}

	if len(segments) != 1 || len(segments[0].Words) != 1 {
		t.Fatalf("segments = %+v", segments)
	}
	if segments[0].Words[0].Text != "hello" {
		t.Errorf("word = %+v", segments[0].Words[0])
	}
}

func TestWhisperXAlignRequiresLanguage(t *testing.T) {
	client := NewWhisperX("http://localhost:9999", "base", time.Second)
	if _, err := client.Align(context.Background(), nil, "x.wav", ""); err == nil {
		t.Fatal("Align() should reject empty language")
	}
}
