package service

import (
	"context"
	"errors"

	"quizforge/config"
	"quizforge/internal/dto"
	"quizforge/internal/llm"
	"quizforge/internal/model"
	"quizforge/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SettingsService resolves which provider configuration a request runs
// under: the user's saved setting when one exists, the platform default
// otherwise. API keys flow to the llm package and nowhere else.
type SettingsService interface {
	Resolve(ctx context.Context, userID string) (llm.Config, error)
	ResolveWithOverride(ctx context.Context, userID string, override *dto.ProviderConfigDTO) (llm.Config, error)
	Get(ctx context.Context, userID string) (*dto.ProviderSettingResponseDTO, error)
	Save(ctx context.Context, userID string, req dto.ProviderSettingSaveDTO) (*dto.ProviderSettingResponseDTO, error)
}

type settingsService struct {
	repo repository.ProviderSettingRepository
	cfg  *config.Config
}

func NewSettingsService(repo repository.ProviderSettingRepository, cfg *config.Config) SettingsService {
	return &settingsService{repo: repo, cfg: cfg}
}

func (s *settingsService) Resolve(ctx context.Context, userID string) (llm.Config, error) {
	setting, err := s.repo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultConfig(), nil
		}
		return llm.Config{}, err
	}
	cfg := llm.Config{
		Provider: setting.Provider,
		Model:    setting.Model,
		APIKey:   setting.APIKey,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = s.cfg.LLM.KeyFor(cfg.Provider)
	}
	return cfg, nil
}

// ResolveWithOverride applies a per-call provider override on top of the
// resolved config. An override without a key falls back to the platform key
// for the overridden provider.
func (s *settingsService) ResolveWithOverride(ctx context.Context, userID string, override *dto.ProviderConfigDTO) (llm.Config, error) {
	if override == nil {
		return s.Resolve(ctx, userID)
	}
	cfg := llm.Config{
		Provider: override.Provider,
		Model:    override.Model,
		APIKey:   override.APIKey,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = s.cfg.LLM.KeyFor(cfg.Provider)
	}
	return cfg, nil
}

func (s *settingsService) Get(ctx context.Context, userID string) (*dto.ProviderSettingResponseDTO, error) {
	setting, err := s.repo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			def := s.defaultConfig()
			return &dto.ProviderSettingResponseDTO{
				Provider:  def.Provider,
				Model:     def.Model,
				IsDefault: true,
			}, nil
		}
		return nil, err
	}
	return &dto.ProviderSettingResponseDTO{
		Provider:  setting.Provider,
		Model:     setting.Model,
		IsDefault: false,
		UpdatedAt: setting.UpdatedAt,
	}, nil
}

func (s *settingsService) Save(ctx context.Context, userID string, req dto.ProviderSettingSaveDTO) (*dto.ProviderSettingResponseDTO, error) {
	candidate := llm.Config{Provider: req.Provider, Model: req.Model, APIKey: req.APIKey}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	setting := &model.ProviderSetting{
		UserID:   userID,
		Provider: req.Provider,
		Model:    req.Model,
		APIKey:   req.APIKey,
	}
	if err := s.repo.Upsert(setting); err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Failed to save provider setting")
		return nil, err
	}
	log.Info().Str("userId", userID).Str("provider", req.Provider).Msg("Provider setting saved")
	return &dto.ProviderSettingResponseDTO{
		Provider:  setting.Provider,
		Model:     setting.Model,
		IsDefault: false,
		UpdatedAt: setting.UpdatedAt,
	}, nil
}

func (s *settingsService) defaultConfig() llm.Config {
	provider := s.cfg.LLM.DefaultProvider
	return llm.Config{
		Provider: provider,
		Model:    s.cfg.LLM.DefaultModel,
		APIKey:   s.cfg.LLM.KeyFor(provider),
	}
}
