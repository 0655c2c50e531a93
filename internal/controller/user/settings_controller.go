package user

import (
	"net/http"

	"quizforge/internal/controller/respond"
	"quizforge/internal/dto"
	"quizforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetProviderSettings godoc
// @Summary (User) Get the user's provider settings
// @Description Returns the user's saved provider and model, or the platform default when nothing is saved. API keys are never returned.
// @Tags User - Provider Settings
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.ProviderSettingResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/provider-settings [get]
func (c *SettingsController) GetProviderSettings(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	setting, err := c.settingsService.Get(ctx.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("User GetProviderSettings: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, setting)
}

// SaveProviderSettings godoc
// @Summary (User) Save the user's provider settings
// @Description Upserts the user's provider, model, and API key. Subsequent generation and evaluation calls for this user run under this configuration.
// @Tags User - Provider Settings
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param settings_data body dto.ProviderSettingSaveDTO true "Provider configuration"
// @Success 200 {object} dto.ProviderSettingResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid provider configuration"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/provider-settings [put]
func (c *SettingsController) SaveProviderSettings(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	var req dto.ProviderSettingSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SaveProviderSettings: Failed to bind JSON")
		respond.BadRequest(ctx, "Invalid request body", err)
		return
	}

	setting, err := c.settingsService.Save(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("User SaveProviderSettings: Service error")
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, setting)
}
