package outreach

import "strings"

// Common capitalized sentence-position words that are not names.
var nameStoplist = map[string]bool{
	"The":       true,
	"Today":     true,
	"Yesterday": true,
	"Tomorrow":  true,
	"And":       true,
	"But":       true,
	"Then":      true,
	"When":      true,
	"After":     true,
	"Before":    true,
	"Maybe":     true,
	"Everyone":  true,
}

var apologyWords = []string{
	"sorry", "apologize", "apologise", "my fault", "forgive",
	"fight", "fought", "argued", "argument", "upset", "hurt",
}

var celebrationWords = []string{
	"fun", "great time", "celebrated", "party", "laughed",
	"hung out", "awesome", "amazing", "best day",
}

// heuristicExtraction is the local fallback when the model call fails or
// returns an invalid shape. Names: capitalized tokens past the first word,
// stoplist-filtered, deduped, capped at 3. Intent: apology keywords outrank
// celebration keywords; celebration only counts as "share" when at least one
// name was found.
func heuristicExtraction(text string) NamesIntent {
	words := strings.Fields(text)
	var names []string
	seen := map[string]bool{}

	// Skip the first word to avoid sentence-starting capitals.
	for i := 1; i < len(words) && len(names) < maxNames; i++ {
		word := strings.TrimRight(words[i], ".,!?;:")
		if !isCapitalizedName(word) || nameStoplist[word] || seen[word] {
			continue
		}
		seen[word] = true
		names = append(names, word)
	}
	if names == nil {
		names = []string{}
	}

	return NamesIntent{
		People: names,
		Intent: heuristicIntent(text, len(names) > 0),
	}
}

func isCapitalizedName(word string) bool {
	if len(word) <= 2 {
		return false
	}
	if word[0] < 'A' || word[0] > 'Z' {
		return false
	}
	for i := 1; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

func heuristicIntent(text string, hasNames bool) string {
	lower := strings.ToLower(text)
	for _, w := range apologyWords {
		if strings.Contains(lower, w) {
			return "apologize"
		}
	}
	if hasNames {
		for _, w := range celebrationWords {
			if strings.Contains(lower, w) {
				return "share"
			}
		}
	}
	return "none"
}
