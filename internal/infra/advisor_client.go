package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"menuadvisor/internal/models/request_models"
	"menuadvisor/internal/models/response_models"
	"menuadvisor/internal/questionnaire"
	"menuadvisor/pkg/middleware"
)

var (
	ErrNetworkFailure    = errors.New("advisor: network failure")
	ErrServiceError      = errors.New("advisor: service error")
	ErrMalformedResponse = errors.New("advisor: malformed response")
)

// ServiceError carries the status of a non-2xx reply. It matches ErrServiceError.
type ServiceError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("advisor: %s returned %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("advisor: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *ServiceError) Is(target error) bool { return target == ErrServiceError }

type AdvisorConfig struct {
	BaseURL string
	// Timeout bounds each call; zero means no timeout.
	Timeout time.Duration
}

// AdvisorClient talks to the question-generation and recommendation services.
type AdvisorClient struct {
	baseURL string
	http    *http.Client
}

func NewAdvisorClient(cfg AdvisorConfig, httpClient *http.Client) *AdvisorClient {
	// Work on a copy so a shared client (http.DefaultClient) keeps its own timeout.
	client := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		client = &copied
	}
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	return &AdvisorClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    client,
	}
}

func (c *AdvisorClient) GenerateQuestions(ctx context.Context, params questionnaire.SessionParams) ([]questionnaire.Question, error) {
	body := request_models.GenerateQuestionsRequest{
		MerchantID: params.MerchantID,
		MenuID:     params.MenuID,
		Language:   params.Language,
	}

	var res response_models.GenerateQuestionsResponse
	if err := c.post(ctx, "/generate-questions", body, &res); err != nil {
		return nil, err
	}
	if res.Questions == nil {
		return nil, fmt.Errorf("%w: missing questions", ErrMalformedResponse)
	}

	out := make([]questionnaire.Question, 0, len(*res.Questions))
	for i, q := range *res.Questions {
		kind, err := questionnaire.ParseKind(q.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformedResponse, i, err)
		}
		out = append(out, questionnaire.NewQuestion(q.Question, kind, q.PossibleAnswers))
	}
	return out, nil
}

func (c *AdvisorClient) SuggestDishes(ctx context.Context, params questionnaire.SessionParams, prefs questionnaire.UserPreferences) ([]questionnaire.Dish, error) {
	if prefs.Preferences == nil {
		prefs.Preferences = []questionnaire.Preference{}
	}
	body := request_models.SuggestDishesRequest{
		MerchantID:      params.MerchantID,
		MenuID:          params.MenuID,
		Language:        params.Language,
		UserPreferences: prefs,
	}

	var res response_models.SuggestDishesResponse
	if err := c.post(ctx, "/suggest-dishes", body, &res); err != nil {
		return nil, err
	}
	if res.SuggestedDishes == nil {
		return nil, fmt.Errorf("%w: missing suggested_dishes", ErrMalformedResponse)
	}
	return *res.SuggestedDishes, nil
}

func (c *AdvisorClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("advisor: encode %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("advisor: build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID := middleware.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetworkFailure, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &ServiceError{
			Endpoint:   path,
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}
