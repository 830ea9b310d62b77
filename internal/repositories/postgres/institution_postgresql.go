package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

type InstitutionPostgreSQL struct {
	db *gorm.DB
}

func NewInstitutionPostgreSQL(db *gorm.DB) repositories.InstitutionRepository {
	return &InstitutionPostgreSQL{db: db}
}

func (i *InstitutionPostgreSQL) Create(ctx context.Context, inst *models.Institution) error {
	if err := i.db.WithContext(ctx).Create(inst).Error; err != nil {
		return fmt.Errorf("failed to create institution: %w", translate(err))
	}
	return nil
}

func (i *InstitutionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Institution, error) {
	var inst models.Institution
	if err := i.db.WithContext(ctx).First(&inst, id).Error; err != nil {
		return nil, translate(err)
	}
	return &inst, nil
}

func (i *InstitutionPostgreSQL) GetByAdminID(ctx context.Context, adminID uint) (*models.Institution, error) {
	var inst models.Institution
	err := i.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		First(&inst).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inst, nil
}

func (i *InstitutionPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := i.db.WithContext(ctx).Model(&models.Institution{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}
