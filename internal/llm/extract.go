package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pageza/cartchef/backend/internal/types"
)

var (
	fencePattern    = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
	youtubePattern  = regexp.MustCompile(`https?://(?:www\.|m\.)?(?:youtube\.com|youtu\.be)/[^\s)\]>"']+`)
	bulletPattern   = regexp.MustCompile(`^\s*(?:[-*•+]|\d+[.)])\s+(.*)$`)
	numberPrefix    = regexp.MustCompile(`^\d+[.)]\s*`)
	boldLeadPattern = regexp.MustCompile(`^\*\*([^*]+)\*\*`)
)

var sectionWords = []string{"ingredient", "instruction", "direction", "step", "method", "preparation", "tip", "note"}

// Extract pulls a dish name, ingredient list and video link out of model output.
// Nothing here is guaranteed: fields stay empty when the text does not offer them.
func Extract(text string) types.RecipeSuggestion {
	s := types.RecipeSuggestion{
		Text:                strings.TrimSpace(text),
		RequiredIngredients: []string{},
	}
	if s.Text == "" {
		return s
	}

	if extractJSON(s.Text, &s) {
		return s
	}

	lines := strings.Split(s.Text, "\n")
	s.Dish = findDish(lines)
	s.RequiredIngredients = findIngredients(lines)
	s.YoutubeLink = findYoutube(s.Text)
	return s
}

// extractJSON handles models that answer with a JSON object, fenced or not
func extractJSON(text string, s *types.RecipeSuggestion) bool {
	candidate := text
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end <= start {
		return false
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &raw); err != nil {
		return false
	}

	dish := firstString(raw, "dish", "name", "recipe", "title")
	ingredients := stringList(raw, "requiredIngredients", "required_ingredients", "ingredients")
	if dish == "" && len(ingredients) == 0 {
		return false
	}

	s.Dish = dish
	s.RequiredIngredients = ingredients
	s.YoutubeLink = firstString(raw, "youtubeLink", "youtube_link", "youtube", "video")
	if s.YoutubeLink == "" {
		s.YoutubeLink = findYoutube(text)
	}
	return true
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func stringList(raw map[string]any, keys ...string) []string {
	out := []string{}
	for _, k := range keys {
		switch v := raw[k].(type) {
		case []any:
			for _, item := range v {
				if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
					out = append(out, strings.TrimSpace(str))
				}
			}
		case string:
			out = append(out, splitInline(v)...)
		}
		if len(out) > 0 {
			return dedupe(out)
		}
	}
	return out
}

// findDish prefers a markdown heading, then a bold lead on a bullet
// ("* **Paneer Bhurji:** ..."), then the first sentence ahead of any list.
// Headings ending in a colon ("**Breakfast:**") are labels, not dishes.
func findDish(lines []string) string {
	var (
		boldLead   string
		firstPlain string
		pastList   bool
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeading(trimmed) {
			name := cleanLine(trimmed)
			switch {
			case name == "":
			case isSection(name):
				pastList = true
			case !isLabel(trimmed):
				return name
			}
			continue
		}
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			pastList = true
			if boldLead == "" {
				if lead := boldLeadPattern.FindStringSubmatch(strings.TrimSpace(m[1])); lead != nil {
					if name := cleanLine(lead[1]); name != "" && !isSection(name) {
						boldLead = name
					}
				}
			}
			continue
		}
		if firstPlain == "" && !pastList && !strings.HasSuffix(trimmed, ":") {
			firstPlain = cleanLine(trimmed)
		}
	}
	if boldLead != "" {
		return boldLead
	}
	return firstPlain
}

func findIngredients(lines []string) []string {
	var (
		items     []string
		inSection bool
		found     bool
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cleaned := cleanLine(trimmed)
		lower := strings.ToLower(cleaned)

		if strings.Contains(lower, "ingredient") && (isHeading(trimmed) || strings.HasSuffix(cleaned, ":") || strings.Contains(lower, "ingredients:") || bulletPattern.MatchString(line)) {
			if found && len(items) > 0 {
				break
			}
			found, inSection = true, true
			if _, after, ok := strings.Cut(cleaned, ":"); ok {
				items = append(items, splitInline(after)...)
			}
			continue
		}

		if !inSection {
			continue
		}

		m := bulletPattern.FindStringSubmatch(line)
		if m == nil || isSection(cleanLine(m[1])) {
			if len(items) > 0 {
				break
			}
			inSection = false
			continue
		}
		if item := cleanLine(m[1]); item != "" {
			items = append(items, item)
		}
	}

	if found {
		return dedupe(items)
	}

	// No ingredient heading: every bullet is the best guess available
	for _, line := range lines {
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			if item := cleanLine(m[1]); item != "" && !isSection(item) {
				items = append(items, item)
			}
		}
	}
	return dedupe(items)
}

func findYoutube(text string) string {
	link := youtubePattern.FindString(text)
	return strings.TrimRight(link, ".,;:!?*")
}

func isHeading(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		line = strings.TrimSpace(m[1])
	}
	line = strings.TrimSuffix(line, ":")
	return strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4
}

func isLabel(heading string) bool {
	return strings.HasSuffix(strings.TrimRight(heading, "*_ "), ":")
}

func isSection(name string) bool {
	lower := strings.ToLower(strings.TrimSuffix(name, ":"))
	if len(lower) > 40 {
		return false
	}
	for _, w := range sectionWords {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}

// cleanLine strips markdown decoration and list numbering
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		line = m[1]
	}
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	line = strings.Trim(line, " *_`")
	line = numberPrefix.ReplaceAllString(line, "")
	line = strings.TrimSuffix(strings.TrimSpace(line), ":")
	return strings.TrimSpace(line)
}

func splitInline(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.Trim(strings.TrimSpace(part), ".*")
		if part != "" {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
