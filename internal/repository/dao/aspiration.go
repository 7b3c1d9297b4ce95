package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAspirationNotFound = errors.New("aspiration not found")

type Aspiration struct {
	ID uint `gorm:"primaryKey"`

	AuthorID    uint   `gorm:"not null;index"`
	IsAnonymous bool   `gorm:"not null;default:false"`
	Subject     string `gorm:"not null"`
	Body        string `gorm:"not null"`
	Status      string `gorm:"not null;default:open;index"`
	Response    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AspirationDAO struct {
	db *gorm.DB
}

func NewAspirationDAO(db *gorm.DB) *AspirationDAO {
	return &AspirationDAO{
		db: db,
	}
}

func (d *AspirationDAO) Insert(ctx context.Context, aspiration Aspiration) (Aspiration, error) {
	result := d.db.WithContext(ctx).Create(&aspiration)
	if result.Error != nil {
		return Aspiration{}, result.Error
	}

	return aspiration, nil
}

func (d *AspirationDAO) FindByID(ctx context.Context, id uint) (Aspiration, error) {
	var aspiration Aspiration

	result := d.db.WithContext(ctx).First(&aspiration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Aspiration{}, ErrAspirationNotFound
		}

		return Aspiration{}, result.Error
	}

	return aspiration, nil
}

func (d *AspirationDAO) FindByAuthor(ctx context.Context, authorID uint) ([]Aspiration, error) {
	var aspirations []Aspiration

	result := d.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&aspirations)
	if result.Error != nil {
		return nil, result.Error
	}

	return aspirations, nil
}

func (d *AspirationDAO) FindAll(ctx context.Context, status string) ([]Aspiration, error) {
	var aspirations []Aspiration

	query := d.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at desc").Find(&aspirations)
	if result.Error != nil {
		return nil, result.Error
	}

	return aspirations, nil
}

func (d *AspirationDAO) Update(ctx context.Context, aspiration Aspiration) (Aspiration, error) {
	result := d.db.WithContext(ctx).Save(&aspiration)
	if result.Error != nil {
		return Aspiration{}, result.Error
	}

	return aspiration, nil
}
