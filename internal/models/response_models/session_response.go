package response_models

import "menuadvisor/internal/questionnaire"

type SessionResponse struct {
	SessionID  string             `json:"session_id"`
	State      string             `json:"state"`
	Loading    bool               `json:"loading"`
	MerchantID string             `json:"merchant_id"`
	MenuID     string             `json:"menu_id"`
	Language   string             `json:"language"`
	Questions  []QuestionResponse `json:"questions"`
	Dishes     []DishResponse     `json:"dishes"`
}

// QuestionResponse pairs a question with the diner's current answer.
// Answer is a string for single-selection and open-text, a list for multi-selection,
// and absent when unanswered.
type QuestionResponse struct {
	Question        string      `json:"question"`
	Type            string      `json:"type"`
	PossibleAnswers []string    `json:"possible_answers"`
	Answered        bool        `json:"answered"`
	Answer          interface{} `json:"answer,omitempty"`
}

type DishResponse struct {
	questionnaire.Dish
	Display DishDisplay `json:"display"`
}

// DishDisplay holds the strings a suggestion card shows.
type DishDisplay struct {
	Ingredients string `json:"ingredients,omitempty"`
	Allergens   string `json:"allergens,omitempty"`
	Price       string `json:"price"`
}

type PreferencesResponse struct {
	SessionID       string                        `json:"session_id"`
	UserPreferences questionnaire.UserPreferences `json:"user_preferences"`
}
