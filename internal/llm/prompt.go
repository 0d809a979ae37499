package llm

import "strings"

const DefaultPromptTemplate = "I added {product} to my cart. What recipes can I make? Suggest ingredients."

// BuildPrompt fills the {product} placeholder. An empty template means the default.
func BuildPrompt(template, product string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultPromptTemplate
	}
	if !strings.Contains(template, "{product}") {
		return template + " " + product
	}
	return strings.ReplaceAll(template, "{product}", product)
}
