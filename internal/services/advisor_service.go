package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"menuadvisor/internal/models/request_models"
	"menuadvisor/internal/models/response_models"
	"menuadvisor/internal/questionnaire"
	mem "menuadvisor/pkg/memcache"
	"menuadvisor/pkg/utils"
)

type AdvisorServiceInterface interface {
	StartSession(ctx context.Context, req request_models.StartSessionRequest) (response_models.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (response_models.SessionResponse, error)
	RefreshQuestions(ctx context.Context, sessionID string) (response_models.SessionResponse, error)
	AnswerSingle(ctx context.Context, sessionID string, req request_models.SingleAnswerRequest) (response_models.SessionResponse, error)
	ToggleAnswer(ctx context.Context, sessionID string, req request_models.ToggleAnswerRequest) (response_models.SessionResponse, error)
	AnswerText(ctx context.Context, sessionID string, req request_models.TextAnswerRequest) (response_models.SessionResponse, error)
	PreviewPreferences(ctx context.Context, sessionID string) (response_models.PreferencesResponse, error)
	Submit(ctx context.Context, sessionID string) (response_models.SessionResponse, error)
	EndSession(ctx context.Context, sessionID string) error
}

type AdvisorServiceConfig struct {
	DefaultParams questionnaire.SessionParams
	SessionTTL    time.Duration
}

type AdvisorService struct {
	upstream questionnaire.Upstream
	sessions mem.SessionStore
	cfg      AdvisorServiceConfig
}

func NewAdvisorService(
	upstream questionnaire.Upstream,
	sessions mem.SessionStore,
	cfg AdvisorServiceConfig,
) AdvisorServiceInterface {
	return &AdvisorService{
		upstream: upstream,
		sessions: sessions,
		cfg:      cfg,
	}
}

// StartSession creates a session and generates its first question set.
// When generation fails the session is still kept and returned together with the error,
// so the caller can retry through RefreshQuestions.
func (a *AdvisorService) StartSession(ctx context.Context, req request_models.StartSessionRequest) (response_models.SessionResponse, error) {
	params := a.cfg.DefaultParams
	if req.MerchantID != "" {
		params.MerchantID = req.MerchantID
	}
	if req.MenuID != "" {
		params.MenuID = req.MenuID
	}
	if req.Language != "" {
		params.Language = req.Language
	}
	if params.MerchantID == "" || params.MenuID == "" || params.Language == "" {
		return response_models.SessionResponse{}, fmt.Errorf("%w: merchant_id, menu_id and language are required", utils.ErrInvalidInput)
	}

	id := uuid.New().String()
	session := questionnaire.NewSession(params, a.upstream, questionnaire.WithErrorReporter(
		func(op string, err error) {
			log.Printf("[session %s] %s failed: %v", id, op, err)
		},
	))
	a.sessions.Set(id, session, a.cfg.SessionTTL)
	log.Printf("Started session %s for merchant %s menu %s (%s)", id, params.MerchantID, params.MenuID, params.Language)

	err := session.FetchQuestions(context.WithoutCancel(ctx))
	return buildSessionResponse(id, session), translateError(err)
}

func (a *AdvisorService) GetSession(ctx context.Context, sessionID string) (response_models.SessionResponse, error) {
	session, err := a.session(sessionID)
	if err != nil {
		return response_models.SessionResponse{}, err
	}
	return buildSessionResponse(sessionID, session), nil
}

func (a *AdvisorService) RefreshQuestions(ctx context.Context, sessionID string) (response_models.SessionResponse, error) {
	session, err := a.session(sessionID)
	if err != nil {
		return response_models.SessionResponse{}, err
	}
	// Upstream calls are not cancelled when the caller goes away; the result still applies.
	if err := session.FetchQuestions(context.WithoutCancel(ctx)); err != nil {
		return response_models.SessionResponse{}, translateError(err)
	}
	return buildSessionResponse(sessionID, session), nil
}

func (a *AdvisorService) AnswerSingle(ctx context.Context, sessionID string, req request_models.SingleAnswerRequest) (response_models.SessionResponse, error) {
	return a.answer(sessionID, func(s *questionnaire.Session) error {
		return s.SetSingle(req.Question, req.Value)
	})
}

func (a *AdvisorService) ToggleAnswer(ctx context.Context, sessionID string, req request_models.ToggleAnswerRequest) (response_models.SessionResponse, error) {
	return a.answer(sessionID, func(s *questionnaire.Session) error {
		return s.ToggleMulti(req.Question, req.Value)
	})
}

func (a *AdvisorService) AnswerText(ctx context.Context, sessionID string, req request_models.TextAnswerRequest) (response_models.SessionResponse, error) {
	if req.Text == nil {
		return response_models.SessionResponse{}, fmt.Errorf("%w: text is required", utils.ErrInvalidInput)
	}
	return a.answer(sessionID, func(s *questionnaire.Session) error {
		return s.SetText(req.Question, *req.Text)
	})
}

func (a *AdvisorService) PreviewPreferences(ctx context.Context, sessionID string) (response_models.PreferencesResponse, error) {
	session, err := a.session(sessionID)
	if err != nil {
		return response_models.PreferencesResponse{}, err
	}
	return response_models.PreferencesResponse{
		SessionID:       sessionID,
		UserPreferences: session.Preferences(),
	}, nil
}

func (a *AdvisorService) Submit(ctx context.Context, sessionID string) (response_models.SessionResponse, error) {
	session, err := a.session(sessionID)
	if err != nil {
		return response_models.SessionResponse{}, err
	}
	if session.Questions().Len() == 0 {
		log.Printf("[session %s] submitting without questions", sessionID)
	}
	if err := session.Submit(context.WithoutCancel(ctx)); err != nil {
		return response_models.SessionResponse{}, translateError(err)
	}
	return buildSessionResponse(sessionID, session), nil
}

func (a *AdvisorService) EndSession(ctx context.Context, sessionID string) error {
	if !a.sessions.Delete(sessionID) {
		return utils.ErrSessionNotFound
	}
	log.Printf("Ended session %s", sessionID)
	return nil
}

func (a *AdvisorService) session(id string) (*questionnaire.Session, error) {
	session, ok := a.sessions.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (a *AdvisorService) answer(sessionID string, apply func(*questionnaire.Session) error) (response_models.SessionResponse, error) {
	session, err := a.session(sessionID)
	if err != nil {
		return response_models.SessionResponse{}, err
	}
	if err := apply(session); err != nil {
		return response_models.SessionResponse{}, translateError(err)
	}
	return buildSessionResponse(sessionID, session), nil
}

// translateError maps session errors onto the API's sentinel errors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, questionnaire.ErrInFlight):
		return fmt.Errorf("%w: %v", utils.ErrRequestInFlight, err)
	case errors.Is(err, questionnaire.ErrOperationFailed):
		return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	case errors.Is(err, questionnaire.ErrQuestionNotFound):
		return fmt.Errorf("%w: %v", utils.ErrQuestionNotFound, err)
	case errors.Is(err, questionnaire.ErrKindMismatch):
		return fmt.Errorf("%w: %v", utils.ErrInvalidAnswer, err)
	default:
		return err
	}
}

func buildSessionResponse(id string, session *questionnaire.Session) response_models.SessionResponse {
	params := session.Params()
	answers := session.Answers()
	questions := session.Questions().Questions()
	dishes := session.Dishes()
	state := session.State()

	resp := response_models.SessionResponse{
		SessionID:  id,
		State:      state.String(),
		Loading:    state != questionnaire.Idle,
		MerchantID: params.MerchantID,
		MenuID:     params.MenuID,
		Language:   params.Language,
		Questions:  make([]response_models.QuestionResponse, 0, len(questions)),
		Dishes:     make([]response_models.DishResponse, 0, len(dishes)),
	}

	for _, q := range questions {
		qr := response_models.QuestionResponse{
			Question:        q.Text,
			Type:            string(q.Kind),
			PossibleAnswers: q.Options,
		}
		if a, ok := answers.Get(q.Text); ok {
			qr.Answered = true
			qr.Answer = answerValue(a)
		}
		resp.Questions = append(resp.Questions, qr)
	}

	for _, d := range dishes {
		resp.Dishes = append(resp.Dishes, response_models.DishResponse{
			Dish:    d,
			Display: dishDisplay(d),
		})
	}
	return resp
}

func answerValue(a questionnaire.Answer) interface{} {
	switch v := a.(type) {
	case questionnaire.MultiAnswer:
		return v.Values()
	default:
		return v.String()
	}
}

func dishDisplay(d questionnaire.Dish) response_models.DishDisplay {
	names := make([]string, 0, len(d.Ingredients))
	for _, i := range d.Ingredients {
		names = append(names, i.Name)
	}
	return response_models.DishDisplay{
		Ingredients: strings.Join(names, ", "),
		Allergens:   strings.Join(d.Allergens, ", "),
		Price:       "€ " + strconv.FormatFloat(d.Price, 'f', -1, 64),
	}
}
