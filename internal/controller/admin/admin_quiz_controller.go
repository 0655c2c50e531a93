package admin

import (
	"net/http"

	"quizforge/internal/controller/respond"
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminQuizController struct {
	quizService     service.QuizService
	settingsService service.SettingsService
}

func NewAdminQuizController(quizService service.QuizService, settingsService service.SettingsService) *AdminQuizController {
	return &AdminQuizController{quizService: quizService, settingsService: settingsService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz with authored questions
// @Description Admin creates a quiz directly. Questions must satisfy the per-kind invariants; total marks are computed server-side.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param quiz_data body dto.QuizCreateDTO true "Quiz with its questions"
// @Success 201 {object} dto.QuizResponseDTO "Quiz created"
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz or question data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [post]
func (c *AdminQuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuiz: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateQuiz: Service error")
		respond.BadRequest(ctx, "Failed to create quiz", err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GenerateQuiz godoc
// @Summary (Admin) Generate a quiz with an LLM and persist it
// @Description Generates questions from a topic or document URL, validates the whole set, and stores it as a new quiz. Provider config resolves from the per-call override, then the creator's saved setting, then the platform default.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param generation_data body dto.GenerateQuizDTO true "Quiz metadata plus generation parameters"
// @Success 201 {object} dto.QuizResponseDTO "Generated quiz created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 502 {object} dto.ErrorResponse "Provider call failed or model output was unusable"
// @Router /admin/quizzes/generate [post]
func (c *AdminQuizController) GenerateQuiz(ctx *gin.Context) {
	var req dto.GenerateQuizDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin GenerateQuiz: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	cfg, err := c.settingsService.ResolveWithOverride(ctx.Request.Context(), req.CreatedBy, req.ProviderConfig)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		respond.BadRequest(ctx, "Invalid provider configuration", err)
		return
	}

	quiz, err := c.quizService.CreateFromGeneration(ctx.Request.Context(), req, cfg)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin GenerateQuiz: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}
