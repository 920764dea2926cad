package dao

import (
	"context"

	"gorm.io/gorm"

	"prepnotes/prepnotes/sources/psql/models"
)

type CategoryDAO struct {
	DB *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{DB: db}
}

// seedCategories is the fixed reference set notes are classified under.
var seedCategories = []models.Category{
	{Name: "Technical", Slug: "technical", Icon: "Code", Color: "blue"},
	{Name: "Behavioral", Slug: "behavioral", Icon: "Users", Color: "green"},
	{Name: "Concepts", Slug: "concepts", Icon: "Lightbulb", Color: "purple"},
	{Name: "Tips", Slug: "tips", Icon: "Star", Color: "yellow"},
}

// Seed inserts the reference categories, skipping slugs that already exist.
func (dao *CategoryDAO) Seed(ctx context.Context) error {
	for _, c := range seedCategories {
		err := dao.DB.WithContext(ctx).
			Where(models.Category{Slug: c.Slug}).
			Attrs(models.Category{Name: c.Name, Icon: c.Icon, Color: c.Color}).
			FirstOrCreate(&models.Category{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (dao *CategoryDAO) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := dao.DB.WithContext(ctx).Order("id asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (dao *CategoryDAO) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	err := dao.DB.WithContext(ctx).First(&category, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
