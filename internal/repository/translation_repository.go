package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reelview-admin/internal/model"
)

// TranslationRepository 基于 gorm 的翻译存储，作为数据库加载器和覆盖加载器的 i18n.TranslationStore
type TranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

// ListByLocale 返回某语言的全部 key/value
func (r *TranslationRepository) ListByLocale(ctx context.Context, locale string) (map[string]string, error) {
	var rows []model.Translation
	if err := r.db.WithContext(ctx).
		Where("locale = ?", locale).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	messages := make(map[string]string, len(rows))
	for _, row := range rows {
		messages[row.Key] = row.Value
	}
	return messages, nil
}

// Upsert 新增翻译，已存在时覆盖 value
func (r *TranslationRepository) Upsert(ctx context.Context, t *model.Translation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "locale"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(t).Error
}

// Page 按可选条件分页查询，按 id 倒序
func (r *TranslationRepository) Page(ctx context.Context, locale, key string, page, size int) ([]model.Translation, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Translation{})
	if locale != "" {
		db = db.Where("locale = ?", locale)
	}
	if key != "" {
		db = db.Where("`key` LIKE ?", "%"+key+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Translation{}, 0, nil
	}

	var rows []model.Translation
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Delete 删除并返回翻译，不存在时返回 gorm.ErrRecordNotFound
func (r *TranslationRepository) Delete(ctx context.Context, id uint) (*model.Translation, error) {
	var t model.Translation
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
