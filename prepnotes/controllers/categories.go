// prepnotes/controllers/categories.go
package controllers

import (
	"context"

	"prepnotes/prepnotes/sources/psql/dao"
	"prepnotes/prepnotes/sources/psql/models"
	"prepnotes/prepnotes/utils/apperrors"
)

// CategoriesController serves the fixed reference categories. Reads are
// unauthenticated.
type CategoriesController struct {
	dao *dao.CategoryDAO
}

func NewCategoriesController(catDAO *dao.CategoryDAO) *CategoriesController {
	return &CategoriesController{dao: catDAO}
}

func (c *CategoriesController) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := c.dao.GetAllCategories(ctx)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrDatabase, "fetching categories: %v", err)
	}
	return categories, nil
}
