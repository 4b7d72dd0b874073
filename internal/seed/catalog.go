// Package seed loads the demo catalog into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	CategoryBooks       = "Livros"
	CategoryElectronics = "Eletrônicos"
	CategoryComputers   = "Computadores"
)

const loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

type productSeed struct {
	name       string
	price      string
	date       string
	categories []string
}

// products are inserted in order, so the n-th entry gets id n on a fresh store.
var products = []productSeed{
	{"The Lord of the Rings", "90.50", "2020-07-13T20:50:07.12345Z", []string{CategoryBooks}},
	{"Smart TV", "2190.00", "2020-07-14T10:00:00Z", []string{CategoryElectronics, CategoryComputers}},
	{"Macbook Pro", "1250.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer", "1200.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"Rails for Dummies", "100.99", "2020-07-14T10:00:00Z", []string{CategoryBooks}},
	{"PC Gamer Ex", "1350.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer X", "1350.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Alfa", "1850.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Tera", "1950.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Y", "1700.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Nitro", "1450.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Card", "1850.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Plus", "1350.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Hera", "2250.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Weed", "2200.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Max", "2099.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Turbo", "1280.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Hot", "1450.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Ez", "1750.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Tr", "1650.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Tx", "1680.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Er", "1850.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Min", "2250.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Boo", "2350.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
	{"PC Gamer Foo", "4170.00", "2020-07-14T10:00:00Z", []string{CategoryComputers}},
}

// ProductCount is the number of products Catalog inserts.
var ProductCount = int64(len(products))

// Catalog inserts the demo categories and products when the product table is empty.
// It reports whether anything was inserted.
func Catalog(ctx context.Context, db *gorm.DB, log *logrus.Logger) (bool, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&domain.Product{}).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("could not count products: %w", err)
	}
	if existing > 0 {
		log.Infof("Seed: %d products already present, skipping demo catalog", existing)
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]domain.Category)
		for _, name := range []string{CategoryBooks, CategoryElectronics, CategoryComputers} {
			category := domain.Category{Name: name}
			if err := tx.Where(domain.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("could not create category %q: %w", name, err)
			}
			byName[name] = category
		}

		for i, p := range products {
			product, err := p.build(byName)
			if err != nil {
				return fmt.Errorf("product %d: %w", i+1, err)
			}
			if err := tx.Omit("Categories.*").Create(&product).Error; err != nil {
				return fmt.Errorf("could not create product %q: %w", p.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Infof("Seed: inserted %d demo products", len(products))
	return true, nil
}

func (p productSeed) build(categories map[string]domain.Category) (domain.Product, error) {
	price, err := decimal.NewFromString(p.price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q: %w", p.price, err)
	}
	date, err := time.Parse(time.RFC3339Nano, p.date)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid date %q: %w", p.date, err)
	}
	product := domain.Product{
		Name:        p.name,
		Description: loremIpsum,
		Price:       price,
		ImgURL:      "https://images.example.com/catalog/" + slug(p.name) + ".jpg",
		Date:        date.UTC(),
	}
	for _, name := range p.categories {
		product.AddCategory(categories[name])
	}
	return product, nil
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
