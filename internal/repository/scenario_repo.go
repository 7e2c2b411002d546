package repository

import (
	"context"
	"errors"

	"market-scenario/internal/model"

	"gorm.io/gorm"
)

type ScenarioRepository interface {
	Create(ctx context.Context, scenario *model.Scenario) error
	GetByID(ctx context.Context, id uint) (*model.Scenario, error)
	List(ctx context.Context, param model.ListScenariosParam) ([]model.Scenario, error)
	Delete(ctx context.Context, id uint) (bool, error)
	SearchByDateRange(ctx context.Context, param model.SearchScenariosParam) ([]model.Scenario, error)
	RecentSymbols(ctx context.Context, limit int) ([]string, error)
}

type scenarioRepository struct {
	db *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (s *scenarioRepository) Create(ctx context.Context, scenario *model.Scenario) error {
	return s.db.WithContext(ctx).Create(scenario).Error
}

func (s *scenarioRepository) GetByID(ctx context.Context, id uint) (*model.Scenario, error) {
	var scenario model.Scenario
	err := s.db.WithContext(ctx).First(&scenario, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scenario, nil
}

func (s *scenarioRepository) List(ctx context.Context, param model.ListScenariosParam) ([]model.Scenario, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")

	if param.Symbol != "" {
		query = query.Where("symbol = ?", param.Symbol)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	var scenarios []model.Scenario
	if err := query.Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (s *scenarioRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := s.db.WithContext(ctx).Delete(&model.Scenario{}, id)
	if db.Error != nil {
		return false, db.Error
	}
	return db.RowsAffected > 0, nil
}

func (s *scenarioRepository) SearchByDateRange(ctx context.Context, param model.SearchScenariosParam) ([]model.Scenario, error) {
	query := s.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", param.StartDate, param.EndDate).
		Order("created_at DESC")

	if param.Symbol != "" {
		query = query.Where("symbol = ?", param.Symbol)
	}

	var scenarios []model.Scenario
	if err := query.Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

// RecentSymbols returns the distinct symbols of the most recently saved
// scenarios, newest first. Used by the cache-refresh scheduler.
func (s *scenarioRepository) RecentSymbols(ctx context.Context, limit int) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Raw("SELECT symbol FROM scenarios GROUP BY symbol ORDER BY MAX(created_at) DESC LIMIT ?", limit).
		Scan(&symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
