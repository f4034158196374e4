package request_models

import "menuadvisor/internal/questionnaire"

// Bodies sent to the question-generation and recommendation services.

type GenerateQuestionsRequest struct {
	MerchantID string `json:"merchant_id"`
	MenuID     string `json:"menu_id"`
	Language   string `json:"language"`
}

type SuggestDishesRequest struct {
	MerchantID      string                        `json:"merchant_id"`
	MenuID          string                        `json:"menu_id"`
	Language        string                        `json:"language"`
	UserPreferences questionnaire.UserPreferences `json:"user_preferences"`
}
