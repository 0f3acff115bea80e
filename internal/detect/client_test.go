package detect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func vector17() []float64 {
	v := make([]float64, 17)
	v[12] = 0.93
	return v
}

func TestDetect_Success(t *testing.T) {
	var gotField, gotFilename, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" || r.Method != "POST" {
			http.NotFound(w, r)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotField = "file"
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(Result{Predictions: vector17()})
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}

	result, err := client.Detect(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("fake video bytes"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if diff := cmp.Diff(vector17(), result.Predictions); diff != "" {
		t.Errorf("predictions mismatch (-want +got):\n%s", diff)
	}
	if gotField != "file" {
		t.Error("expected multipart field named 'file'")
	}
	if gotFilename != "clip.mp4" {
		t.Errorf("filename = %q, want clip.mp4", gotFilename)
	}
	if gotContentType != "video/mp4" {
		t.Errorf("part content type = %q, want video/mp4", gotContentType)
	}
}

func TestDetect_StreamsUpload(t *testing.T) {
	const videoSize = 3 << 20
	var gotLen int64
	var gotContentLength int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentLength = r.ContentLength
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotLen, _ = io.Copy(io.Discard, file)
		json.NewEncoder(w).Encode(Result{Predictions: vector17()})
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	video := io.LimitReader(neverEnding('v'), videoSize)
	if _, err := client.Detect(context.Background(), "big.mp4", "video/mp4", video); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if gotLen != videoSize {
		t.Errorf("server received %d bytes, want %d", gotLen, videoSize)
	}
	// A streamed body is chunked; a pre-buffered one would carry a length.
	if gotContentLength > 0 {
		t.Errorf("expected chunked upload, got Content-Length %d", gotContentLength)
	}
}

// neverEnding is an infinite reader of one repeated byte.
type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}

func TestDetect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	_, err := client.Detect(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !HasStatusCode(err, http.StatusInternalServerError) {
		t.Errorf("expected HTTP 500 API error, got: %v", err)
	}
	msg := UserMessage(err)
	if !strings.Contains(msg, "HTTP 500") {
		t.Errorf("expected status in user message, got: %q", msg)
	}
}

func TestDetect_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // now nothing listens there

	client, _ := New(url)
	_, err := client.Detect(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection failure, got: %v", err)
	}
	if got := UserMessage(err); !strings.Contains(got, "Could not connect") {
		t.Errorf("unexpected user message: %q", got)
	}
}

func TestDetect_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() { close(block); server.Close() }()

	client, _ := New(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Detect(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout, got: %v", err)
	}
	if got := UserMessage(err); !strings.Contains(got, "timed out") {
		t.Errorf("unexpected user message: %q", got)
	}
}

func TestDetect_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	_, err := client.Detect(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if IsTimeout(err) || IsConnection(err) {
		t.Errorf("parse failure misclassified: %v", err)
	}
	if got := UserMessage(err); !strings.Contains(got, "Unexpected error") {
		t.Errorf("unexpected user message: %q", got)
	}
}

func TestDetect_CancelledWhileQueued(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(Result{Predictions: vector17()})
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = client.Detect(context.Background(), "a.mp4", "video/mp4", strings.NewReader("x"))
	}()
	<-started
	time.Sleep(20 * time.Millisecond) // let the first call take the slot

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Detect(ctx, "b.mp4", "video/mp4", strings.NewReader("y"))
	if err == nil {
		t.Fatal("expected error for cancelled queued call")
	}
	close(release)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound) // any response means reachable
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	server.Close()
	client2, _ := New(server.URL)
	if err := client2.Ping(context.Background()); err == nil {
		t.Error("expected Ping error for closed server")
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty base URL")
	}
}
