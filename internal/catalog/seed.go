package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

//go:embed seed/products.toml
var defaultSeed []byte

var ErrInvalidSeed = errors.New("invalid seed")

type seedFile struct {
	Products []models.Product `toml:"products"`
}

// LoadSeed reads the catalog seed from path, or the built-in seed when path
// is empty.
func LoadSeed(path string) ([]models.Product, error) {
	if strings.TrimSpace(path) == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]models.Product, error) {
	var f seedFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Products))
	for i, p := range f.Products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q: %w", i, p.ID, ErrInvalidSeed)
		}
		seen[p.ID] = struct{}{}
	}
	if f.Products == nil {
		f.Products = []models.Product{}
	}
	return f.Products, nil
}

func validateProduct(p models.Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("id is required: %w", ErrInvalidSeed)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("title is required: %w", ErrInvalidSeed)
	case p.Price < 0:
		return fmt.Errorf("price cannot be negative: %w", ErrInvalidSeed)
	case p.UnitsInStock < 0:
		return fmt.Errorf("units in stock cannot be negative: %w", ErrInvalidSeed)
	case p.Votes.UpVotes.CurrentValue < 0 || p.Votes.UpVotes.CurrentValue > p.Votes.UpVotes.UpperLimit:
		return fmt.Errorf("up votes out of range: %w", ErrInvalidSeed)
	case p.Votes.DownVotes.CurrentValue < p.Votes.DownVotes.LowerLimit:
		return fmt.Errorf("down votes below lower limit: %w", ErrInvalidSeed)
	}
	return nil
}
