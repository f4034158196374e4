package questionnaire

import "context"

type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Dish is a suggestion returned by the recommendation service.
type Dish struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	Ingredients  []Ingredient `json:"ingredients"`
	Allergens    []string     `json:"allergens"`
	CategoryID   string       `json:"categoryId"`
	CategoryName string       `json:"categoryName"`
}

// SessionParams scope one questionnaire-and-recommendation round trip.
type SessionParams struct {
	MerchantID string `json:"merchant_id"`
	MenuID     string `json:"menu_id"`
	Language   string `json:"language"`
}

// Upstream is the pair of external services a session talks to.
type Upstream interface {
	GenerateQuestions(ctx context.Context, params SessionParams) ([]Question, error)
	SuggestDishes(ctx context.Context, params SessionParams, prefs UserPreferences) ([]Dish, error)
}
