package user

import (
	"net/http"

	"quizforge/internal/controller/respond"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// ListQuizzes godoc
// @Summary (User) List available quizzes
// @Description Get the quiz catalog without question bodies.
// @Tags User - Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.ListQuizzes(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("User ListQuizzes: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary (User) Get a quiz with its questions
// @Description Get a quiz in full, questions ordered by position, so a user can start an attempt.
// @Tags User - Quizzes
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID := ctx.Param("quiz_id")
	quiz, err := c.quizService.GetQuizWithQuestions(ctx.Request.Context(), quizID)
	if err != nil {
		log.Warn().Err(err).Str("quizId", quizID).Msg("User GetQuiz: Quiz not found or service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}
