package services

import (
	"encoding/json"
	"strings"
)

// SongSuggestion is an AI-produced candidate song. It stays ephemeral
// until a user promotes it into the catalog via the playlist API.
type SongSuggestion struct {
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	Album          string  `json:"album"`
	Year           *int    `json:"year,omitempty"`
	Genre          *string `json:"genre,omitempty"`
	Duration       string  `json:"duration"`
	RelevanceScore float64 `json:"relevance_score"`
}

const defaultRelevanceScore = 0.5

// ParseSongs extracts song suggestions from a raw provider response. The
// provider is instructed to return a bare JSON array but frequently wraps
// it in prose, so the first '[' through the last ']' is taken as the
// candidate region. Any malformed input yields an empty slice; this
// function never fails.
func ParseSongs(raw string) []SongSuggestion {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return []SongSuggestion{}
	}

	var elements []map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &elements); err != nil {
		return []SongSuggestion{}
	}

	songs := make([]SongSuggestion, 0, len(elements))
	for _, element := range elements {
		songs = append(songs, SongSuggestion{
			Title:          stringField(element, "title"),
			Artist:         stringField(element, "artist"),
			Album:          stringField(element, "album"),
			Year:           intField(element, "year"),
			Genre:          stringFieldPtr(element, "genre"),
			Duration:       stringField(element, "duration"),
			RelevanceScore: floatField(element, "relevance_score", defaultRelevanceScore),
		})
	}
	return songs
}

func stringField(element map[string]interface{}, key string) string {
	if v, ok := element[key].(string); ok {
		return v
	}
	return ""
}

func stringFieldPtr(element map[string]interface{}, key string) *string {
	if v, ok := element[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func intField(element map[string]interface{}, key string) *int {
	// encoding/json decodes all JSON numbers as float64
	if v, ok := element[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func floatField(element map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := element[key].(float64); ok {
		return v
	}
	return fallback
}
