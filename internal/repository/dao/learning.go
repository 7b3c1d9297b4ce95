package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("learning category not found")
	ErrCategoryNotEmpty = errors.New("learning category still has children or materials")
	ErrMaterialNotFound = errors.New("learning material not found")
)

type LearningCategory struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	ParentID *uint  `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LearningMaterial struct {
	ID uint `gorm:"primaryKey"`

	CategoryID  uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	URL         string
	FilePath    string
	UploadedBy  uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LearningDAO struct {
	db *gorm.DB
}

func NewLearningDAO(db *gorm.DB) *LearningDAO {
	return &LearningDAO{
		db: db,
	}
}

func (d *LearningDAO) InsertCategory(ctx context.Context, category LearningCategory) (LearningCategory, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return LearningCategory{}, result.Error
	}

	return category, nil
}

func (d *LearningDAO) FindCategoryByID(ctx context.Context, id uint) (LearningCategory, error) {
	var category LearningCategory

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LearningCategory{}, ErrCategoryNotFound
		}

		return LearningCategory{}, result.Error
	}

	return category, nil
}

func (d *LearningDAO) FindAllCategories(ctx context.Context) ([]LearningCategory, error) {
	var categories []LearningCategory

	result := d.db.WithContext(ctx).Order("id").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// DeleteCategory refuses to delete a category that still has child
// categories or materials attached.
func (d *LearningDAO) DeleteCategory(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var children int64
		if err := tx.Model(&LearningCategory{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return err
		}

		var materials int64
		if err := tx.Model(&LearningMaterial{}).Where("category_id = ?", id).Count(&materials).Error; err != nil {
			return err
		}

		if children > 0 || materials > 0 {
			return ErrCategoryNotEmpty
		}

		result := tx.Delete(&LearningCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}

		return nil
	})
}

func (d *LearningDAO) InsertMaterial(ctx context.Context, material LearningMaterial) (LearningMaterial, error) {
	result := d.db.WithContext(ctx).Create(&material)
	if result.Error != nil {
		return LearningMaterial{}, result.Error
	}

	return material, nil
}

func (d *LearningDAO) FindMaterialByID(ctx context.Context, id uint) (LearningMaterial, error) {
	var material LearningMaterial

	result := d.db.WithContext(ctx).First(&material, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LearningMaterial{}, ErrMaterialNotFound
		}

		return LearningMaterial{}, result.Error
	}

	return material, nil
}

func (d *LearningDAO) FindMaterialsByCategory(ctx context.Context, categoryID uint) ([]LearningMaterial, error) {
	var materials []LearningMaterial

	result := d.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("title").
		Find(&materials)
	if result.Error != nil {
		return nil, result.Error
	}

	return materials, nil
}

func (d *LearningDAO) UpdateMaterial(ctx context.Context, material LearningMaterial) (LearningMaterial, error) {
	result := d.db.WithContext(ctx).Save(&material)
	if result.Error != nil {
		return LearningMaterial{}, result.Error
	}

	return material, nil
}

func (d *LearningDAO) DeleteMaterial(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&LearningMaterial{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}

	return nil
}
