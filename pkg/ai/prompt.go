package ai

import (
	"fmt"
)

// BuildSearchPrompt renders the song recommendation prompt for a query.
// The output is deterministic for a given (query, limit) pair; the parser
// downstream must not assume the provider obeyed it.
func BuildSearchPrompt(query string, limit int) string {
	return fmt.Sprintf(`You are a music recommendation AI. Based on the search query "%s", suggest exactly %d songs that match or are related to this search.

Please respond ONLY with a valid JSON array in this exact format:
[
  {
    "title": "Song Title",
    "artist": "Artist Name",
    "album": "Album Name",
    "year": 2023,
    "genre": "Genre",
    "duration": "3:45",
    "relevance_score": 0.95
  }
]

Rules:
- Return exactly %d songs
- Include popular and relevant songs
- Mix different time periods when appropriate
- Ensure all songs are real, existing songs
- Include relevance_score between 0.0 and 1.0
- No additional text or explanations, just the JSON array`, query, limit, limit)
}
