package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"menuadvisor/internal/models/request_models"
	"menuadvisor/internal/services"
	"menuadvisor/pkg/utils"
)

type SessionController struct {
	advisorService services.AdvisorServiceInterface
}

func NewSessionController(advisorService services.AdvisorServiceInterface) *SessionController {
	return &SessionController{
		advisorService: advisorService,
	}
}

// StartSessionHandler godoc
// @Summary Start a questionnaire session
// @Description Create a session and generate its first questions. Empty fields fall back to the configured merchant, menu and language
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body request_models.StartSessionRequest false "Session parameters"
// @Success 201 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions [post]
func (s *SessionController) StartSessionHandler(c *gin.Context) {
	var req request_models.StartSessionRequest
	// An empty body means "use the configured merchant, menu and language".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.advisorService.StartSession(c.Request.Context(), req)
	switch {
	case err == nil:
		utils.RespondWithStatus(c, http.StatusCreated, resp, "Session started")
	case errors.Is(err, utils.ErrUpstreamFailure) && resp.SessionID != "":
		utils.RespondWithStatus(c, http.StatusCreated, resp, "Session started, but questions could not be generated. Retry with POST /sessions/"+resp.SessionID+"/questions")
	default:
		utils.HandleServiceError(c, err)
	}
}

// GetSessionHandler godoc
// @Summary Get a session
// @Description Fetch questions, current answers, loading state and suggested dishes
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id} [get]
func (s *SessionController) GetSessionHandler(c *gin.Context) {
	resp, err := s.advisorService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Fetched session successfully")
}

// EndSessionHandler godoc
// @Summary End a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id} [delete]
func (s *SessionController) EndSessionHandler(c *gin.Context) {
	if err := s.advisorService.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session ended")
}

// RefreshQuestionsHandler godoc
// @Summary Generate new questions
// @Description Replace the question set; clears answers and suggested dishes on success
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /sessions/{id}/questions [post]
func (s *SessionController) RefreshQuestionsHandler(c *gin.Context) {
	resp, err := s.advisorService.RefreshQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Generated new questions")
}

// AnswerSingleHandler godoc
// @Summary Answer a single-selection question
// @Tags Answers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SingleAnswerRequest true "Selected option"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id}/answers/single [post]
func (s *SessionController) AnswerSingleHandler(c *gin.Context) {
	var req request_models.SingleAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question and value are required")
		return
	}
	resp, err := s.advisorService.AnswerSingle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Answer recorded")
}

// ToggleAnswerHandler godoc
// @Summary Toggle an option of a multi-selection question
// @Tags Answers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ToggleAnswerRequest true "Option to toggle"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id}/answers/toggle [post]
func (s *SessionController) ToggleAnswerHandler(c *gin.Context) {
	var req request_models.ToggleAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question and value are required")
		return
	}
	resp, err := s.advisorService.ToggleAnswer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Selection toggled")
}

// AnswerTextHandler godoc
// @Summary Answer an open-text question
// @Description Empty text is a valid answer
// @Tags Answers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.TextAnswerRequest true "Free text"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id}/answers/text [post]
func (s *SessionController) AnswerTextHandler(c *gin.Context) {
	var req request_models.TextAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question and text are required")
		return
	}
	resp, err := s.advisorService.AnswerText(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Answer recorded")
}

// PreviewPreferencesHandler godoc
// @Summary Preview submitted preferences
// @Description The user_preferences payload a submit would send right now
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.PreferencesResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id}/preferences [get]
func (s *SessionController) PreviewPreferencesHandler(c *gin.Context) {
	resp, err := s.advisorService.PreviewPreferences(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Preferences preview")
}

// SubmitHandler godoc
// @Summary Submit preferences
// @Description Send answered questions to the recommendation service and store the suggested dishes
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /sessions/{id}/submit [post]
func (s *SessionController) SubmitHandler(c *gin.Context) {
	resp, err := s.advisorService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Suggested dishes")
}

func (s *SessionController) RegisterRoutes(r gin.IRouter) {
	sessions := r.Group("/sessions")
	sessions.POST("", s.StartSessionHandler)
	sessions.GET("/:id", s.GetSessionHandler)
	sessions.DELETE("/:id", s.EndSessionHandler)
	sessions.POST("/:id/questions", s.RefreshQuestionsHandler)
	sessions.POST("/:id/answers/single", s.AnswerSingleHandler)
	sessions.POST("/:id/answers/toggle", s.ToggleAnswerHandler)
	sessions.POST("/:id/answers/text", s.AnswerTextHandler)
	sessions.GET("/:id/preferences", s.PreviewPreferencesHandler)
	sessions.POST("/:id/submit", s.SubmitHandler)
}
