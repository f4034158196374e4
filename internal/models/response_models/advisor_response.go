package response_models

import "menuadvisor/internal/questionnaire"

// Bodies returned by the upstream services. Slices are pointers so a missing
// field can be told apart from an empty one.

type GeneratedQuestion struct {
	Question        string   `json:"question"`
	Type            string   `json:"type"`
	PossibleAnswers []string `json:"possible_answers"`
}

type GenerateQuestionsResponse struct {
	Questions *[]GeneratedQuestion `json:"questions"`
}

type SuggestDishesResponse struct {
	SuggestedDishes *[]questionnaire.Dish `json:"suggested_dishes"`
}
