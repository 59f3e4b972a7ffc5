package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/propabilia/argus/internal/providers"
)

func TestExtractTextSendsDataURL(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	var body struct {
		Messages []struct {
			Content []map[string]interface{} `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  SHOW1001 Lamp  "}}]}`))
	}))
	defer server.Close()

	text, err := New(server.URL).ExtractText(context.Background(), providers.Config{
		Model:  "gpt-4o",
		Prompt: "read",
		Image:  &providers.Image{Data: []byte("abc"), MIMEType: "image/png"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "SHOW1001 Lamp" {
		t.Errorf("Expected trimmed content, got %q", text)
	}

	if len(body.Messages) != 1 || len(body.Messages[0].Content) != 2 {
		t.Fatalf("Expected one message with text and image parts, got %+v", body.Messages)
	}
	imageURL, _ := body.Messages[0].Content[1]["image_url"].(map[string]interface{})
	url, _ := imageURL["url"].(string)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("Expected png data url, got %q", url)
	}
}

func TestExtractTextRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := New("http://127.0.0.1:0").ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error without API key")
	}
}
