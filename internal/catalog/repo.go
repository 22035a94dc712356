package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

var ErrNotFound = errors.New("product not found")

type productRecord struct {
	ID             string  `gorm:"primaryKey;size:64"`
	Position       int     `gorm:"index;not null"`
	Title          string  `gorm:"not null"`
	Img            string  `gorm:"not null"`
	Price          float64 `gorm:"not null"`
	UnitsInStock   int     `gorm:"not null;check:units_in_stock >= 0"`
	UpVotes        int     `gorm:"not null"`
	UpVotesLimit   int     `gorm:"not null"`
	DownVotes      int     `gorm:"not null"`
	DownVotesLimit int     `gorm:"not null"`
	IsFavorite     bool    `gorm:"not null;default:false"`
	Created        string  `gorm:"column:created_at"`
	Updated        string  `gorm:"column:updated_at"`
}

func (productRecord) TableName() string {
	return "catalog_products"
}

func toRecord(p models.Product, position int) productRecord {
	return productRecord{
		ID:             p.ID,
		Position:       position,
		Title:          p.Title,
		Img:            p.Img,
		Price:          p.Price,
		UnitsInStock:   p.UnitsInStock,
		UpVotes:        p.Votes.UpVotes.CurrentValue,
		UpVotesLimit:   p.Votes.UpVotes.UpperLimit,
		DownVotes:      p.Votes.DownVotes.CurrentValue,
		DownVotesLimit: p.Votes.DownVotes.LowerLimit,
		IsFavorite:     p.IsFavorite,
		Created:        p.CreatedAt,
		Updated:        p.UpdatedAt,
	}
}

func (r productRecord) toProduct() models.Product {
	return models.Product{
		ID:           r.ID,
		Title:        r.Title,
		Img:          r.Img,
		Price:        r.Price,
		UnitsInStock: r.UnitsInStock,
		Votes: models.Votes{
			UpVotes:   models.UpVotes{CurrentValue: r.UpVotes, UpperLimit: r.UpVotesLimit},
			DownVotes: models.DownVotes{CurrentValue: r.DownVotes, LowerLimit: r.DownVotesLimit},
		},
		IsFavorite: r.IsFavorite,
		CreatedAt:  r.Created,
		UpdatedAt:  r.Updated,
	}
}

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate() error {
	return r.DB.AutoMigrate(&productRecord{})
}

// Seed inserts products when the catalog table is empty and reports how many
// rows were written.
func (r *GormRepo) Seed(ctx context.Context, products []models.Product) (int, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&productRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total > 0 || len(products) == 0 {
		return 0, nil
	}

	records := make([]productRecord, 0, len(products))
	for i, p := range products {
		records = append(records, toRecord(p, i))
	}
	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error; err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	return len(records), nil
}

// ListProducts returns products in catalog order. A non-positive limit
// returns everything from offset on.
func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&productRecord{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	q := r.DB.WithContext(ctx).Model(&productRecord{}).Order("position ASC").Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []productRecord
	if err := q.Find(&records).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toProduct())
	}
	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var rec productRecord
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
		}
		return nil, err
	}
	p := rec.toProduct()
	return &p, nil
}
