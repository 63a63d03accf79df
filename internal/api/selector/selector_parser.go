package selector

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	defaultMatchScore = 80
	defaultReason     = "A good match for your day plan."
)

func parseSelections(response string) ([]Selection, error) {
	cleaned := cleanJSONResponse(response)

	var raw []struct {
		ID         *int64 `json:"id"`
		MatchScore *int   `json:"match_score"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse selection JSON: %w", err)
	}

	selections := make([]Selection, 0, len(raw))
	for _, item := range raw {
		if item.ID == nil {
			// An entry without an id cannot be resolved; skip it.
			continue
		}
		score := defaultMatchScore
		if item.MatchScore != nil && *item.MatchScore >= 0 && *item.MatchScore <= 100 {
			score = *item.MatchScore
		}
		reason := strings.TrimSpace(item.Reason)
		if reason == "" {
			reason = defaultReason
		}
		selections = append(selections, Selection{ID: *item.ID, MatchScore: score, Reason: reason})
	}
	return selections, nil
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	response = strings.TrimSpace(response)

	// Extract the array from a response that might contain explanatory text
	firstBracket := strings.Index(response, "[")
	if firstBracket == -1 {
		return response // No JSON array found, return as is
	}

	lastBracket := strings.LastIndex(response, "]")
	if lastBracket == -1 || lastBracket <= firstBracket {
		return response // No valid JSON structure found
	}

	return strings.TrimSpace(response[firstBracket : lastBracket+1])
}
