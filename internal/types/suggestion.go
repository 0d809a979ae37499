package types

// RecipeSuggestion is the loosely shaped result of asking the model about a
// cart product. Every field except Text may be empty.
type RecipeSuggestion struct {
	Product             string   `json:"product"`
	Dish                string   `json:"dish,omitempty"`
	RequiredIngredients []string `json:"requiredIngredients"`
	YoutubeLink         string   `json:"youtubeLink,omitempty"`
	Text                string   `json:"text"`
	Fallback            bool     `json:"fallback"`
}
