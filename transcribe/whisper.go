package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Whisper decoding parameters: voice-activity filtering on, beam size 1 for
// the fastest decoding mode.
const (
	vadFilter = "true"
	beamSize  = "1"
)

// WhisperServer is a Recognizer backed by a whisper.cpp-compatible
// inference server.
type WhisperServer struct {
	url    string
	client *http.Client
}

// NewWhisperServer creates a Recognizer that posts audio to the given
// inference endpoint.
func NewWhisperServer(url string) *WhisperServer {
	return &WhisperServer{
		url:    url,
		client: &http.Client{},
	}
}

type whisperResponse struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
}

func (w *WhisperServer) Recognize(ctx context.Context, path string) ([]Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open staged audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	writer.WriteField("vad_filter", vadFilter)
	writer.WriteField("beam_size", beamSize)
	writer.WriteField("response_format", "verbose_json")
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, &body)
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference server returned %d: %s", resp.StatusCode, raw)
	}

	var parsed whisperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse inference response: %w", err)
	}

	if len(parsed.Segments) > 0 {
		return parsed.Segments, nil
	}
	if parsed.Text == "" {
		return nil, nil
	}
	return []Segment{{Text: parsed.Text}}, nil
}
