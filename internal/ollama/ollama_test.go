package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/propabilia/argus/internal/providers"
)

func TestExtractTextSendsImage(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"CERTIFICATE OF AUTHENTICITY"}`))
	}))
	defer server.Close()

	text, err := New(server.URL).ExtractText(context.Background(), providers.Config{
		Model:  "llava",
		Prompt: "read",
		Image:  &providers.Image{Data: []byte("abc"), MIMEType: "image/jpeg"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "CERTIFICATE OF AUTHENTICITY" {
		t.Errorf("Expected response text, got %q", text)
	}

	images, ok := got["images"].([]interface{})
	if !ok || len(images) != 1 || images[0] != "YWJj" {
		t.Errorf("Expected base64 image in request, got %v", got["images"])
	}
	if got["model"] != "llava" {
		t.Errorf("Expected model llava, got %v", got["model"])
	}
}

func TestExtractTextNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := New(server.URL).ExtractText(context.Background(), providers.Config{Model: "none"}); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
