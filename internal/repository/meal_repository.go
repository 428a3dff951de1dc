package repository

import (
	"context"

	"gorm.io/gorm"

	"meals_on_wheels/internal/models"
)

// importBatchSize keeps each INSERT well under the driver's bind
// parameter limit.
const importBatchSize = 500

type MealRepository interface {
	List(ctx context.Context) ([]models.Meal, error)
	FindByID(ctx context.Context, id uint) (*models.Meal, error)
	// Save inserts meal when it has no ID, otherwise updates every column.
	Save(ctx context.Context, meal *models.Meal) error
	// Delete removes the row permanently.
	Delete(ctx context.Context, meal *models.Meal) error
	CreateBatch(ctx context.Context, meals []models.Meal) error
}

type GormMealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *GormMealRepository {
	return &GormMealRepository{db: db}
}

func (r *GormMealRepository) List(ctx context.Context) ([]models.Meal, error) {
	meals := []models.Meal{}
	if err := r.db.WithContext(ctx).Order("id").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *GormMealRepository) FindByID(ctx context.Context, id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		return nil, translate(err)
	}
	return &meal, nil
}

func (r *GormMealRepository) Save(ctx context.Context, meal *models.Meal) error {
	if meal.ID == 0 {
		return r.db.WithContext(ctx).Create(meal).Error
	}
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *GormMealRepository) Delete(ctx context.Context, meal *models.Meal) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(meal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormMealRepository) CreateBatch(ctx context.Context, meals []models.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&meals, importBatchSize).Error
}
