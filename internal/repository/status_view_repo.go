package repository

import (
	"errors"

	"tingling/internal/model"

	"gorm.io/gorm"
)

type StatusViewRepository interface {
	CreateOrGet(view *model.StatusView) (*model.StatusView, error)
	FindByStatusAndViewer(statusID uint, viewerID string) (*model.StatusView, error)
	FindByStatusID(statusID uint) ([]*model.StatusView, error)
}

type statusViewRepository struct {
	db *gorm.DB
}

func NewStatusViewRepository(db *gorm.DB) StatusViewRepository {
	return &statusViewRepository{db: db}
}

// CreateOrGet records the view once. A repeat view, including one that loses
// an insert race on the unique index, returns the stored row unchanged.
func (r *statusViewRepository) CreateOrGet(view *model.StatusView) (*model.StatusView, error) {
	existing, err := r.FindByStatusAndViewer(view.StatusID, view.ViewerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(view).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByStatusAndViewer(view.StatusID, view.ViewerID)
		}
		return nil, err
	}
	return view, nil
}

func (r *statusViewRepository) FindByStatusAndViewer(statusID uint, viewerID string) (*model.StatusView, error) {
	var view model.StatusView
	err := r.db.Where("status_id = ? AND viewer_id = ?", statusID, viewerID).First(&view).Error
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *statusViewRepository) FindByStatusID(statusID uint) ([]*model.StatusView, error) {
	var views []*model.StatusView
	err := r.db.Where("status_id = ?", statusID).
		Order("viewed_at DESC, id DESC").
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
