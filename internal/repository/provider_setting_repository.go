package repository

import (
	"quizforge/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProviderSettingRepository interface {
	FindByUser(userID string) (*model.ProviderSetting, error)
	Upsert(setting *model.ProviderSetting) error
}

type providerSettingRepository struct {
	db *gorm.DB
}

func NewProviderSettingRepository(db *gorm.DB) ProviderSettingRepository {
	return &providerSettingRepository{db: db}
}

func (r *providerSettingRepository) FindByUser(userID string) (*model.ProviderSetting, error) {
	var setting model.ProviderSetting
	err := r.db.First(&setting, "user_id = ?", userID).Error
	return &setting, err
}

func (r *providerSettingRepository) Upsert(setting *model.ProviderSetting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"provider", "model", "api_key", "updated_at"}),
	}).Create(setting).Error
}
