package selector

import (
	"encoding/json"
	"fmt"
)

func buildSelectionPrompt(intent, locationLabel string, candidates []Candidate) string {
	location := locationLabel
	if location == "" {
		location = "the city"
	}
	data, _ := json.Marshal(candidates)

	return fmt.Sprintf(`
            Role: Local tour guide for %s.

            Task:
            1. Based on the visitor's request: "%s"
            2. Pick the 8-12 most suitable places from the candidate list below. Pick fewer if fewer fit.
            3. Only use ids that appear in the candidate list.
            4. For each pick, return a match_score between 0 and 100 and a short, engaging reason.

            Candidates:
            %s

            Return the response STRICTLY as a JSON array with:
            [
                { "id": <int>, "match_score": <int>, "reason": "string" }
            ]`, location, intent, string(data))
}
