package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type NewsPostgreSQL struct {
	db *gorm.DB
}

func NewNewsPostgreSQL(db *gorm.DB) repositories.NewsRepository {
	return &NewsPostgreSQL{db: db}
}

func (n *NewsPostgreSQL) Create(ctx context.Context, news *models.News) error {
	if err := n.db.WithContext(ctx).Create(news).Error; err != nil {
		return fmt.Errorf("failed to create news: %w", translate(err))
	}
	return nil
}

// GetByID is tenant-scoped: an admin can only load announcements owned by
// their own institution, whatever id they guess.
func (n *NewsPostgreSQL) GetByID(ctx context.Context, id, institutionID uint) (*models.News, error) {
	var news models.News
	err := n.db.WithContext(ctx).
		Where("id = ? AND institution_id = ?", id, institutionID).
		First(&news).Error
	if err != nil {
		return nil, translate(err)
	}
	return &news, nil
}

func (n *NewsPostgreSQL) ListByInstitution(ctx context.Context, institutionID uint) ([]*models.News, error) {
	var items []*models.News
	err := n.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (n *NewsPostgreSQL) Update(ctx context.Context, news *models.News) error {
	if err := n.db.WithContext(ctx).Save(news).Error; err != nil {
		return fmt.Errorf("failed to update news: %w", translate(err))
	}
	return nil
}

func (n *NewsPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := n.db.WithContext(ctx).Delete(&models.News{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete news: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
