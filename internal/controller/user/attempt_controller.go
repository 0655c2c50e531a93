package user

import (
	"net/http"

	"quizforge/internal/controller/respond"
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// StartAttempt godoc
// @Summary (User) Start an attempt on a quiz
// @Description Starts an attempt, or returns the caller's existing in-progress attempt for this quiz. A user holds at most one in-progress attempt per quiz.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Param start_data body dto.StartAttemptDTO true "User starting the attempt"
// @Success 201 {object} dto.AttemptResponseDTO "Attempt (new or pre-existing)"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	quizID := ctx.Param("quiz_id")
	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User StartAttempt: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	attempt, err := c.attemptService.Start(ctx.Request.Context(), quizID, req.UserID)
	if err != nil {
		log.Error().Err(err).Str("quizId", quizID).Str("userId", req.UserID).Msg("User StartAttempt: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SaveAnswer godoc
// @Summary (User) Save one answer on an in-progress attempt
// @Description Merges one answer into the attempt, last write wins per question. Rejected once the attempt is completed.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param answer_data body dto.SaveAnswerDTO true "Question ID and answer value"
// @Success 200 {object} dto.AttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SaveAnswer(ctx *gin.Context) {
	attemptID := ctx.Param("attempt_id")
	var req dto.SaveAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SaveAnswer: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	attempt, err := c.attemptService.SaveAnswer(ctx.Request.Context(), attemptID, req.QuestionID, req.Value)
	if err != nil {
		log.Warn().Err(err).Str("attemptId", attemptID).Msg("User SaveAnswer: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAttempt godoc
// @Summary (User) Submit an attempt for grading
// @Description Sends the attempt to the configured LLM for evaluation. On success the attempt becomes completed with score and feedback; on evaluation failure it stays in progress and can be resubmitted.
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponseDTO "Graded attempt"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Failure 502 {object} dto.ErrorResponse "Provider call failed or grading output was unusable"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID := ctx.Param("attempt_id")
	attempt, err := c.attemptService.Submit(ctx.Request.Context(), attemptID)
	if err != nil {
		log.Error().Err(err).Str("attemptId", attemptID).Msg("User SubmitAttempt: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetAttempt godoc
// @Summary (User) Get one attempt
// @Description Get an attempt with its answers and, once completed, the evaluation result.
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID := ctx.Param("attempt_id")
	attempt, err := c.attemptService.GetAttempt(ctx.Request.Context(), attemptID)
	if err != nil {
		log.Warn().Err(err).Str("attemptId", attemptID).Msg("User GetAttempt: Attempt not found or service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// ListUserAttempts godoc
// @Summary (User) List a user's attempts
// @Description Attempt history for a user across quizzes, most recent first.
// @Tags User - Attempts
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/attempts [get]
func (c *AttemptController) ListUserAttempts(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	attempts, err := c.attemptService.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("User ListUserAttempts: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
