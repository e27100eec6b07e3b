package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var embeddedCatalog []byte

// Provider supplies the raw catalog once at startup.
type Provider interface {
	Load(ctx context.Context) (Data, error)
}

type Data struct {
	Categories []domain.Category
	Products   []domain.Product
}

// EmbeddedProvider serves the mock catalog compiled into the binary.
type EmbeddedProvider struct{}

func (EmbeddedProvider) Load(context.Context) (Data, error) {
	return decode(embeddedCatalog, "yaml")
}

// FileProvider reads a catalog file; .json files are decoded as JSON and
// everything else as YAML.
type FileProvider struct {
	Path string
}

func (p FileProvider) Load(context.Context) (Data, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return Data{}, fmt.Errorf("read catalog file: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(p.Path), ".json") {
		format = "json"
	}
	return decode(raw, format)
}

type catalogFile struct {
	Categories []categoryRecord `yaml:"categories" json:"categories"`
	Products   []productRecord  `yaml:"products" json:"products"`
}

type categoryRecord struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Image string `yaml:"image" json:"image"`
}

type productRecord struct {
	ID                 string   `yaml:"id" json:"id"`
	Name               string   `yaml:"name" json:"name"`
	Price              amount   `yaml:"price" json:"price"`
	OriginalPrice      amount   `yaml:"original_price" json:"originalPrice"`
	DiscountPercentage *int     `yaml:"discount_percentage" json:"discountPercentage"`
	Description        string   `yaml:"description" json:"description"`
	Image              string   `yaml:"image" json:"image"`
	Images             []string `yaml:"images" json:"images"`
	Category           string   `yaml:"category" json:"category"`
	Tags               []string `yaml:"tags" json:"tags"`
	Featured           bool     `yaml:"featured" json:"featured"`
	Rating             *float64 `yaml:"rating" json:"rating"`
	Reviews            *int     `yaml:"reviews" json:"reviews"`
}

// amount accepts prices written as numbers or strings in either format and
// keeps the literal text so no float rounding happens before decimal parsing.
type amount string

func (a *amount) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", n.Line)
	}
	*a = amount(n.Value)
	return nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		*a = ""
		return nil
	}
	*a = amount(strings.Trim(s, `"`))
	return nil
}

func decode(raw []byte, format string) (Data, error) {
	var f catalogFile
	var err error
	if format == "json" {
		err = json.Unmarshal(raw, &f)
	} else {
		err = yaml.Unmarshal(raw, &f)
	}
	if err != nil {
		return Data{}, fmt.Errorf("parse catalog: %w", err)
	}

	data := Data{
		Categories: make([]domain.Category, 0, len(f.Categories)),
		Products:   make([]domain.Product, 0, len(f.Products)),
	}
	for _, c := range f.Categories {
		data.Categories = append(data.Categories, domain.Category{ID: c.ID, Name: c.Name, Image: c.Image})
	}
	for i, r := range f.Products {
		p, err := r.toProduct()
		if err != nil {
			return Data{}, fmt.Errorf("product #%d (%q): %w", i+1, r.ID, err)
		}
		data.Products = append(data.Products, p)
	}
	return data, nil
}

func (r productRecord) toProduct() (domain.Product, error) {
	price, err := decimal.NewFromString(string(r.Price))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q: %w", r.Price, err)
	}
	p := domain.Product{
		ID:                 strings.TrimSpace(r.ID),
		Name:               strings.TrimSpace(r.Name),
		Price:              price,
		DiscountPercentage: r.DiscountPercentage,
		Description:        r.Description,
		Image:              r.Image,
		Images:             r.Images,
		Category:           r.Category,
		Tags:               r.Tags,
		Featured:           r.Featured,
		Rating:             r.Rating,
		Reviews:            r.Reviews,
	}
	if r.OriginalPrice != "" {
		op, err := decimal.NewFromString(string(r.OriginalPrice))
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid original price %q: %w", r.OriginalPrice, err)
		}
		p.OriginalPrice = &op
	}
	return p, nil
}
