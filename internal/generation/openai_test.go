package generation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAIClient(server.URL, "test-model", "sk-test", 2*time.Second, zap.NewNop())
}

func TestGenerateParsesOutputText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("path = %q, want /responses", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output_text":"{\"options\":[{\"label\":\"Angle A\",\"rationale\":\"Test angle.\",\"facebook\":{\"headline\":\"Hi\"}}]}"}`))
	})

	result := client.Generate(context.Background(), []string{models.ChannelFacebook}, testContext())

	if result.Kind != ResultSuccess {
		t.Fatalf("kind = %q, err = %v", result.Kind, result.Err)
	}
	if len(result.Options) != 1 {
		t.Fatalf("options = %d, want 1", len(result.Options))
	}
	if result.Options[0].Label != "Angle A" {
		t.Errorf("label = %q, want Angle A", result.Options[0].Label)
	}
	if result.Options[0].Facebook == nil {
		t.Error("facebook pack missing")
	}
}

func TestGenerateHandlesFencedOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":[{"content":[{"text":"Here you go:\n` + "```json\\n{\\\"options\\\":[{\\\"label\\\":\\\"Fenced\\\"}]}\\n```" + `"}]}]}`))
	})

	result := client.Generate(context.Background(), []string{models.ChannelGoogle}, testContext())

	if result.Kind != ResultSuccess {
		t.Fatalf("kind = %q, err = %v", result.Kind, result.Err)
	}
	if result.Options[0].Label != "Fenced" {
		t.Errorf("label = %q, want Fenced", result.Options[0].Label)
	}
}

func TestGenerateClassifiesServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	result := client.Generate(context.Background(), []string{models.ChannelFacebook}, testContext())

	if result.Kind != ResultServiceError {
		t.Errorf("kind = %q, want service-error", result.Kind)
	}
	if result.Err == nil {
		t.Error("expected an error")
	}
}

func TestGenerateClassifiesBadOutput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"prose only", `{"output_text":"I cannot help with that."}`},
		{"empty options", `{"output_text":"{\"options\":[]}"}`},
		{"empty output", `{"output_text":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			result := client.Generate(context.Background(), []string{models.ChannelFacebook}, testContext())
			if result.Kind != ResultBadOutput {
				t.Errorf("kind = %q, want bad-output", result.Kind)
			}
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	client := NewOpenAIClient("https://api.openai.com/v1", "test-model", "", time.Second, zap.NewNop())

	result := client.Generate(context.Background(), []string{models.ChannelFacebook}, testContext())
	if result.Kind != ResultServiceError {
		t.Errorf("kind = %q, want service-error", result.Kind)
	}
}

func TestParseModelJSONRecoversBraces(t *testing.T) {
	doc, err := parseModelJSON(`Sure! {"options":[{"label":"Braced"}]} Hope that helps.`)
	if err != nil {
		t.Fatalf("parseModelJSON: %v", err)
	}
	if len(doc.Options) != 1 || doc.Options[0].Label != "Braced" {
		t.Errorf("options = %+v", doc.Options)
	}
}
