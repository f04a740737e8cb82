package pipeline

import (
	"strings"

	"pantry-chef/internal/pkg/common"
)

// Extract recovers a single JSON object from an arbitrary text blob and
// returns its literal text. Tiers are tried strictly in order, first success
// wins:
//
//  1. parse the text verbatim,
//  2. strip Markdown code-fence markers and parse again,
//  3. parse the substring between the first '{' and the last '}'.
//
// No tier attempts semantic repair: malformed JSON after substring
// extraction is a hard failure.
func Extract(text string) (string, error) {
	if isJSONObject(text) {
		return text, nil
	}

	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	if isJSONObject(clean) {
		return clean, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		candidate := text[start : end+1]
		if isJSONObject(candidate) {
			return candidate, nil
		}
	}

	preview := text
	if len(preview) > 100 {
		preview = preview[:100]
	}
	return "", &ExtractionError{Preview: preview}
}

// isJSONObject reports whether s is exactly one valid JSON object, with no
// trailing data.
func isJSONObject(s string) bool {
	var obj map[string]interface{}
	return common.ParseJSON(s, &obj) == nil && obj != nil
}
