package llm

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/vuhm/codecoach/internal/storage"
)

// ParseFeatures extracts a feature set from model output. The model is asked
// for bare JSON but often wraps it in prose or code fences, so the parser
// locates the outermost object before decoding. Anything unparseable degrades
// to the default feature set.
func ParseFeatures(response string) storage.FeatureSet {
	raw := extractJSON(response)
	if raw == "" {
		log.Printf("Warning: no JSON object in feature response, using defaults")
		return storage.DefaultFeatures()
	}

	var parsed struct {
		ProblemType    string   `json:"problem_type"`
		Difficulty     string   `json:"difficulty"`
		DataStructures []string `json:"data_structures"`
		Algorithms     []string `json:"algorithms"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("Warning: malformed feature JSON, using defaults: %v", err)
		return storage.DefaultFeatures()
	}

	features := storage.DefaultFeatures()
	if parsed.ProblemType != "" {
		features.ProblemType = strings.ToLower(strings.TrimSpace(parsed.ProblemType))
	}
	if d := normalizeDifficulty(parsed.Difficulty); d != "" {
		features.Difficulty = d
	}
	if len(parsed.DataStructures) > 0 {
		features.DataStructures = cleanList(parsed.DataStructures)
	}
	if len(parsed.Algorithms) > 0 {
		features.Algorithms = cleanList(parsed.Algorithms)
	}

	return features
}

// extractJSON returns the first balanced top-level JSON object in s.
func extractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	return ""
}

// normalizeDifficulty maps free-form difficulty text onto the known levels.
// Returns "" when the text matches none of them.
func normalizeDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case storage.DifficultyEasy:
		return storage.DifficultyEasy
	case storage.DifficultyMedium:
		return storage.DifficultyMedium
	case storage.DifficultyHard:
		return storage.DifficultyHard
	}
	return ""
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
