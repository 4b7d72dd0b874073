package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. A zero ID means the product has not been persisted yet;
// the store assigns the identity on first save.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImgURL      string          `gorm:"column:img_url;size:512" json:"img_url"`
	Date        time.Time       `gorm:"column:date" json:"date"`
	Categories  []Category      `gorm:"many2many:tb_product_category" json:"categories"`
}

func (Product) TableName() string {
	return "tb_product"
}

// AddCategory adds c to the product's category set unless a category with the same id is
// already a member.
func (p *Product) AddCategory(c Category) {
	for _, existing := range p.Categories {
		if existing.ID == c.ID {
			return
		}
	}
	p.Categories = append(p.Categories, c)
}

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "tb_category"
}
