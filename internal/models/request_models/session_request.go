package request_models

// StartSessionRequest overrides the configured merchant/menu/language when set.
type StartSessionRequest struct {
	MerchantID string `json:"merchant_id"`
	MenuID     string `json:"menu_id"`
	Language   string `json:"language"`
}

type SingleAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

type ToggleAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// Text may be empty, so it is a pointer to tell "" from a missing field.
type TextAnswerRequest struct {
	Question string  `json:"question" binding:"required"`
	Text     *string `json:"text" binding:"required"`
}
