package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackResponse is returned whenever the model output cannot be parsed.
// The primary save flow must never hard-fail on malformed model output.
const FallbackResponse = "Thank you for sharing. Your feelings are valid."

var validMoods = map[string]bool{
	"happy":    true,
	"sad":      true,
	"exciting": true,
	"nervous":  true,
	"neutral":  true,
}

// Result is the validator's output: either a parsed classification or the
// safe fallback. Callers that care (e.g. signature learning) check Fallback
// instead of treating the default label as a real classification.
type Result struct {
	Mood     string `json:"mood"`
	Response string `json:"response"`
	Fallback bool   `json:"-"`
}

func fallbackResult() Result {
	return Result{Mood: "neutral", Response: FallbackResponse, Fallback: true}
}

// Validate cleans and parses raw model output into a Result.
//
// Unparsable output degrades to the fallback rather than erroring; a parsed
// object missing either key is a schema violation and a hard error. Mood is
// lowercase-normalized and coerced to neutral when outside the enum.
func Validate(raw string) (Result, error) {
	clean := stripFences(raw)

	var parsed struct {
		Mood     *string `json:"mood"`
		Response *string `json:"response"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return fallbackResult(), nil
	}

	if parsed.Mood == nil || *parsed.Mood == "" || parsed.Response == nil || *parsed.Response == "" {
		return Result{}, fmt.Errorf("invalid response format from model: missing mood or response")
	}

	mood := strings.ToLower(strings.TrimSpace(*parsed.Mood))
	if !validMoods[mood] {
		mood = "neutral"
	}

	return Result{Mood: mood, Response: *parsed.Response}, nil
}

// stripFences removes markdown code-fence wrappers the model sometimes adds
// around its JSON.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json\n", "")
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// StripFences is shared with the weekly and outreach parsers, which clean
// model output the same way.
func StripFences(s string) string {
	return stripFences(s)
}
