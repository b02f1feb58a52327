package database

import (
	"context"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rpupo63/blogicum-backend/models"
	"gorm.io/gorm"
)

type LocationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db}
}

func (r *LocationRepo) FindAll(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).Order("name").Order("id").Find(&locations).Error
	return locations, translate("find", "locations", err)
}

func (r *LocationRepo) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, translate("find", "location", err)
	}
	return &location, nil
}

func (r *LocationRepo) Add(ctx context.Context, location *models.Location) error {
	return translate("create", "location", r.db.WithContext(ctx).Create(location).Error)
}

func (r *LocationRepo) Update(ctx context.Context, location *models.Location) error {
	res := r.db.WithContext(ctx).Model(location).
		Select("name", "is_published").
		Updates(location)
	if res.Error != nil {
		return translate("update", "location", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("location")
	}
	return nil
}

// Delete removes a location and detaches its posts
func (r *LocationRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Location{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("location")
		}
		return nil
	})
	return translate("delete", "location", err)
}
