package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phuslu/log"
)

// RawItem is one classified sentence as the model reported it, before
// normalization. Score and Entities stay loosely typed because the
// model does not reliably honor the requested shapes.
type RawItem struct {
	Text              string        `json:"text"`
	Impact            string        `json:"impact"`
	Tone              string        `json:"tone"`
	ForecastType      string        `json:"forecast_type"`
	Score             interface{}   `json:"score"`
	Entities          []interface{} `json:"entities"`
	CategoriesMatched []string      `json:"categories_matched"`
}

var (
	fencePattern         = regexp.MustCompile("(?i)^```json|```$")
	trailingCommaObject  = regexp.MustCompile(`,\s*}`)
	trailingCommaArray   = regexp.MustCompile(`,\s*]`)
)

// ExtractJSONArray locates a JSON array inside messy model output,
// tolerating code fences and surrounding prose, and repairs trailing
// commas before closers. Best-effort boundary adapter: returns false
// when no array bounds exist.
func ExtractJSONArray(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	cleaned := strings.TrimSpace(text)
	cleaned = fencePattern.ReplaceAllString(cleaned, "")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}

	block := cleaned[start : end+1]
	block = trailingCommaObject.ReplaceAllString(block, "}")
	block = trailingCommaArray.ReplaceAllString(block, "]")
	return block, true
}

// ParseItems extracts and parses the model's JSON array. Failures at
// the array level yield an empty list; a malformed element drops only
// that element.
func ParseItems(text string) []RawItem {
	block, ok := ExtractJSONArray(text)
	if !ok {
		return []RawItem{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(block), &elements); err != nil {
		log.Warn().Err(err).Msg("classify: response array unparseable, dropping batch output")
		return []RawItem{}
	}

	items := make([]RawItem, 0, len(elements))
	for i, el := range elements {
		var item RawItem
		if err := json.Unmarshal(el, &item); err != nil {
			log.Warn().Int("item", i).Err(err).Msg("classify: malformed item dropped")
			continue
		}
		items = append(items, item)
	}
	return items
}
