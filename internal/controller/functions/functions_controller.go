// Package functions exposes the generation and evaluation pipelines as
// standalone endpoints. Nothing here persists state; callers get the raw
// pipeline output and do their own storage.
package functions

import (
	"errors"
	"net/http"

	"quizforge/internal/controller/respond"
	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FunctionsController struct {
	generationService service.GenerationService
	evaluationService service.EvaluationService
	settingsService   service.SettingsService
	quizRepo          repository.QuizRepository
}

func NewFunctionsController(
	generationService service.GenerationService,
	evaluationService service.EvaluationService,
	settingsService service.SettingsService,
	quizRepo repository.QuizRepository,
) *FunctionsController {
	return &FunctionsController{
		generationService: generationService,
		evaluationService: evaluationService,
		settingsService:   settingsService,
		quizRepo:          quizRepo,
	}
}

// GenerateQuiz godoc
// @Summary (Functions) Generate questions without persisting
// @Description Runs the generation pipeline and returns the validated question set. Nothing is stored.
// @Tags Functions
// @Accept json
// @Produce json
// @Param generation_data body dto.GenerateFunctionRequestDTO true "Topic or document URL, count, optional provider override"
// @Success 200 {array} dto.GeneratedQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 502 {object} dto.ErrorResponse "Provider call failed or model output was unusable"
// @Router /functions/generate-quiz [post]
func (c *FunctionsController) GenerateQuiz(ctx *gin.Context) {
	var req dto.GenerateFunctionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Functions GenerateQuiz: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	cfg, err := c.settingsService.ResolveWithOverride(ctx.Request.Context(), req.UserID, req.ProviderConfig)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		respond.BadRequest(ctx, "Invalid provider configuration", err)
		return
	}

	questions, err := c.generationService.GenerateQuestions(ctx.Request.Context(), dto.GenerationRequestDTO{
		Topic:       req.Topic,
		DocumentURL: req.DocumentURL,
		Count:       req.Count,
	}, cfg)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.Provider).Msg("Functions GenerateQuiz: Pipeline error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// EvaluateQuiz godoc
// @Summary (Functions) Evaluate answers against a quiz
// @Description Grades an answer map against a quiz supplied inline in the request, or against a stored quiz referenced by ID. No attempt is created or modified.
// @Tags Functions
// @Accept json
// @Produce json
// @Param evaluation_data body dto.EvaluateFunctionRequestDTO true "Inline quiz or quiz ID, answers, optional provider override"
// @Success 200 {object} dto.EvaluationResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 502 {object} dto.ErrorResponse "Provider call failed or grading output was unusable"
// @Router /functions/evaluate-quiz [post]
func (c *FunctionsController) EvaluateQuiz(ctx *gin.Context) {
	var req dto.EvaluateFunctionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Functions EvaluateQuiz: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	var quiz *model.Quiz
	switch {
	case req.Quiz != nil:
		assembled, err := service.AssembleQuiz(req.Quiz.Title, req.Quiz.EvaluationPrompts, req.Quiz.Questions)
		if err != nil {
			respond.BadRequest(ctx, "Invalid quiz payload", err)
			return
		}
		quiz = assembled
	case req.QuizID != "":
		stored, err := c.quizRepo.FindByIDWithQuestions(req.QuizID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Error(ctx, service.ErrQuizNotFound)
				return
			}
			respond.Error(ctx, err)
			return
		}
		quiz = stored
	default:
		respond.BadRequest(ctx, "Either quiz or quiz_id is required", nil)
		return
	}

	cfg, err := c.settingsService.ResolveWithOverride(ctx.Request.Context(), req.UserID, req.ProviderConfig)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		respond.BadRequest(ctx, "Invalid provider configuration", err)
		return
	}

	result, err := c.evaluationService.Evaluate(ctx.Request.Context(), quiz, req.Answers, cfg)
	if err != nil {
		log.Error().Err(err).Str("quizId", quiz.ID).Msg("Functions EvaluateQuiz: Pipeline error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
