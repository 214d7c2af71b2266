package repository

import (
	"context"

	"gorm.io/gorm"

	"healthtrack/internal/model"
)

// SpecializationRepository defines specialization persistence operations.
type SpecializationRepository interface {
	Create(ctx context.Context, spec *model.Specialization) error
	FindByID(ctx context.Context, id uint) (*model.Specialization, error)
	FindByName(ctx context.Context, name string) (*model.Specialization, error)
	List(ctx context.Context) ([]model.Specialization, error)
	Delete(ctx context.Context, id uint) error
}

type specializationRepository struct {
	db *gorm.DB
}

// NewSpecializationRepository builds a GORM-backed repository.
func NewSpecializationRepository(db *gorm.DB) SpecializationRepository {
	return &specializationRepository{db: db}
}

func (r *specializationRepository) Create(ctx context.Context, spec *model.Specialization) error {
	return r.db.WithContext(ctx).Create(spec).Error
}

func (r *specializationRepository) FindByID(ctx context.Context, id uint) (*model.Specialization, error) {
	var spec model.Specialization
	if err := r.db.WithContext(ctx).First(&spec, id).Error; err != nil {
		return nil, err
	}
	return &spec, nil
}

func (r *specializationRepository) FindByName(ctx context.Context, name string) (*model.Specialization, error) {
	var spec model.Specialization
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&spec).Error; err != nil {
		return nil, err
	}
	return &spec, nil
}

func (r *specializationRepository) List(ctx context.Context) ([]model.Specialization, error) {
	var specs []model.Specialization
	if err := r.db.WithContext(ctx).Order("name").Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

func (r *specializationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Specialization{}, id).Error
}
