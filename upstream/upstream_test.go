package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/june-assistant/relay/core/protocol"
	"github.com/june-assistant/relay/upstream"
)

func newClient(baseURL string) *upstream.Client {
	cfg := upstream.DefaultConfig()
	cfg.Merge(&upstream.Config{BaseURL: baseURL})
	return upstream.New(&cfg)
}

func sseDelta(content string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`+"\n\n", content)
}

// collect drains a stream into its deltas, returning the terminal error.
func collect(s *upstream.Stream) ([]string, error) {
	defer s.Close()

	var deltas []string
	for {
		delta, err := s.Recv()
		if err != nil {
			return deltas, err
		}
		deltas = append(deltas, delta)
	}
}

func TestStream_DeltasInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("got path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseDelta("Hi"))
		io.WriteString(w, sseDelta(" there"))
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	stream, err := newClient(srv.URL).Stream(context.Background(), protocol.DefaultModel, nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	deltas, err := collect(stream)
	if err != io.EOF {
		t.Fatalf("got terminal %v, want io.EOF", err)
	}
	if len(deltas) != 2 || deltas[0] != "Hi" || deltas[1] != " there" {
		t.Errorf("got deltas %q, want [Hi,  there]", deltas)
	}
}

func TestStream_RequestPayload(t *testing.T) {
	var got upstream.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	messages := []protocol.Message{
		protocol.NewMessage(protocol.RoleSystem, "policy"),
		protocol.NewMessage(protocol.RoleUser, "hello"),
	}
	stream, err := newClient(srv.URL).Stream(context.Background(), "llama-3.2-3b-instruct", messages)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	collect(stream)

	if got.Model != "llama-3.2-3b-instruct" {
		t.Errorf("got model %q", got.Model)
	}
	if !got.Stream {
		t.Error("stream flag not set")
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != protocol.RoleSystem {
		t.Errorf("got messages %v, want canonical pair", got.Messages)
	}
}

func TestStream_SkipsNoiseAndMalformedLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, ": keepalive comment\n")
		io.WriteString(w, "\n")
		io.WriteString(w, "event: message\n")
		io.WriteString(w, "data: {not json at all\n")
		io.WriteString(w, sseDelta("ok"))
		io.WriteString(w, `data: {"choices":[]}`+"\n")
		io.WriteString(w, `data: {"choices":[{"delta":{"content":""}}]}`+"\n")
		io.WriteString(w, sseDelta("fine"))
		io.WriteString(w, "data: [DONE]\n")
	}))
	defer srv.Close()

	stream, err := newClient(srv.URL).Stream(context.Background(), protocol.DefaultModel, nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	deltas, err := collect(stream)
	if err != io.EOF {
		t.Fatalf("got terminal %v, want io.EOF", err)
	}
	if len(deltas) != 2 || deltas[0] != "ok" || deltas[1] != "fine" {
		t.Errorf("got deltas %q, want noise dropped around [ok, fine]", deltas)
	}
}

func TestStream_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "overloaded")
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Stream(context.Background(), protocol.DefaultModel, nil)

	var statusErr *upstream.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got error %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want 503", statusErr.Status)
	}
	if statusErr.Error() != "LM error 503: overloaded" {
		t.Errorf("got message %q, want %q", statusErr.Error(), "LM error 503: overloaded")
	}
}

func TestStream_TransportAbortMidStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, sseDelta("partial"))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	stream, err := newClient(srv.URL).Stream(context.Background(), protocol.DefaultModel, nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	deltas, err := collect(stream)
	if len(deltas) != 1 || deltas[0] != "partial" {
		t.Errorf("got deltas %q, want the flushed fragment", deltas)
	}
	if err == nil || err == io.EOF {
		t.Errorf("got terminal %v, want a transport error", err)
	}
}

func TestStream_CleanEOFWithoutSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, sseDelta("tail"))
	}))
	defer srv.Close()

	stream, err := newClient(srv.URL).Stream(context.Background(), protocol.DefaultModel, nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	deltas, err := collect(stream)
	if err != io.EOF {
		t.Errorf("got terminal %v, want io.EOF for a clean close", err)
	}
	if len(deltas) != 1 || deltas[0] != "tail" {
		t.Errorf("got deltas %q", deltas)
	}
}

func TestStream_ContextCancellationAbortsRead(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, sseDelta("one"))
		w.(http.Flusher).Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := newClient(srv.URL).Stream(ctx, protocol.DefaultModel, nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	defer stream.Close()

	if delta, err := stream.Recv(); err != nil || delta != "one" {
		t.Fatalf("Recv() = %q, %v", delta, err)
	}

	cancel()

	if _, err := stream.Recv(); err == nil || err == io.EOF {
		t.Errorf("got terminal %v, want a cancellation error", err)
	}
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("got path %q", r.URL.Path)
		}
		io.WriteString(w, `{"data":[{"id":"llama-3.2-3b-instruct","object":"model"}]}`)
	}))
	defer srv.Close()

	models, err := newClient(srv.URL).Models(context.Background())
	if err != nil {
		t.Fatalf("Models() error = %v", err)
	}
	if len(models) != 1 || models[0].ID != "llama-3.2-3b-instruct" {
		t.Errorf("got models %v", models)
	}
}

func TestModels_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	if _, err := newClient(srv.URL).Models(context.Background()); err == nil {
		t.Error("got nil error for unreachable endpoint")
	}
}
