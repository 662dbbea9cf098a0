package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/vuhm/codecoach/internal/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OllamaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOllamaClient(OllamaConfig{
		BaseURL:    server.URL,
		ChatModel:  "test-chat",
		EmbedModel: "test-embed",
	})
}

func TestGenerate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["model"] != "test-chat" {
			t.Errorf("model = %v, want test-chat", payload["model"])
		}
		if stream, ok := payload["stream"].(bool); !ok || stream {
			t.Errorf("stream = %v, want false", payload["stream"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "hello"},
		})
	})

	got, err := client.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hello" {
		t.Errorf("Generate = %q, want %q", got, "hello")
	}
}

func TestGenerateServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": ""},
		})
	})

	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestEmbed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var payload struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Model != "test-embed" {
			t.Errorf("model = %q, want test-embed", payload.Model)
		}
		vectors := make([][]float32, len(payload.Input))
		for i := range vectors {
			vectors[i] = []float32{float32(i), 0.5}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"embeddings": vectors})
	})

	got, err := client.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d embeddings, want 3", len(got))
	}
	if got[2][0] != 2 {
		t.Errorf("embedding[2][0] = %v, want 2", got[2][0])
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embeddings": [][]float32{{1, 2}},
		})
	})

	if _, err := client.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error when embedding count differs from input count")
	}
}

func TestExtractFeaturesDegradesOnFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	got := client.ExtractFeatures(context.Background(), "some problem")
	want := storage.DefaultFeatures()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractFeatures = %+v, want defaults %+v", got, want)
	}
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     storage.FeatureSet
	}{
		{
			name:     "bare JSON",
			response: `{"problem_type": "array", "difficulty": "easy", "data_structures": ["hash table"], "algorithms": ["two pointers"]}`,
			want: storage.FeatureSet{
				ProblemType:    "array",
				Difficulty:     "easy",
				DataStructures: []string{"hash table"},
				Algorithms:     []string{"two pointers"},
			},
		},
		{
			name: "fenced JSON with prose",
			response: "Here is the analysis:\n```json\n" +
				`{"problem_type": "Graph", "difficulty": "Hard", "data_structures": ["queue"], "algorithms": ["bfs"]}` +
				"\n```\nHope that helps.",
			want: storage.FeatureSet{
				ProblemType:    "graph",
				Difficulty:     "hard",
				DataStructures: []string{"queue"},
				Algorithms:     []string{"bfs"},
			},
		},
		{
			name:     "unknown difficulty keeps default",
			response: `{"problem_type": "string", "difficulty": "extreme", "data_structures": [], "algorithms": []}`,
			want: storage.FeatureSet{
				ProblemType:    "string",
				Difficulty:     "medium",
				DataStructures: []string{},
				Algorithms:     []string{},
			},
		},
		{
			name:     "no JSON at all",
			response: "I cannot analyze this problem.",
			want:     storage.DefaultFeatures(),
		},
		{
			name:     "malformed JSON",
			response: `{"problem_type": "array", "difficulty":`,
			want:     storage.DefaultFeatures(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFeatures(tt.response)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFeatures() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractJSONBalanced(t *testing.T) {
	input := `prefix {"a": {"b": "with } brace"}} suffix`
	got := extractJSON(input)
	want := `{"a": {"b": "with } brace"}}`
	if got != want {
		t.Errorf("extractJSON = %q, want %q", got, want)
	}
	if strings.Contains(got, "suffix") {
		t.Error("extractJSON leaked trailing text")
	}
}
