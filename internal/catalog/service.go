package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/util"
)

var ErrValidation = errors.New("validation")

type Service struct {
	Repo *GormRepo
}

// ListAll returns the whole catalog, which is what the shop loads on start.
func (s *Service) ListAll(ctx context.Context) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, 0, 0)
}

func (s *Service) ListPage(ctx context.Context, page, size int) (int64, []models.Product, error) {
	offset, limit := util.Calculate(page, size)
	return s.Repo.ListProducts(ctx, offset, limit)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("id is required: %w", ErrValidation)
	}
	return s.Repo.GetProduct(ctx, id)
}
