package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reelview-admin/internal/model"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// SaveDaily 写入当天计数，覆盖同一天之前的落库结果
func (r *StatsRepository) SaveDaily(ctx context.Context, stats []model.LocaleDailyStat) error {
	if len(stats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "locale"}, {Name: "outcome"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
	}).Create(&stats).Error
}

// ListByDate 查询某天的计数（格式：YYYY-MM-DD）
func (r *StatsRepository) ListByDate(ctx context.Context, date string) ([]model.LocaleDailyStat, error) {
	var stats []model.LocaleDailyStat
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("locale, outcome").
		Find(&stats).Error
	return stats, err
}
