package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryElectronics = "Electronics"
	CategoryGroceries   = "Groceries"
	CategoryClothing    = "Clothing"
	CategoryBeauty      = "Beauty"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryElectronics, CategoryGroceries, CategoryClothing, CategoryBeauty:
		return true
	}
	return false
}

type Product struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	Thumbnail          string          `json:"image,omitempty"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand,omitempty"`
	Stock              int             `json:"stock,omitempty"`
	Rating             float64         `json:"rating,omitempty"`
	DiscountPercentage float64         `json:"discount_percentage,omitempty"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type MetaInfo struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Barcode   string    `json:"barcode"`
	QRCode    string    `json:"qrCode"`
}

type Review struct {
	ID            int       `json:"id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerEmail string    `json:"reviewer_email"`
}

// DetailedProduct is the product_detail payload: the product with its
// optional nested records and up to ten products from the same category.
type DetailedProduct struct {
	Product
	Dimensions      *Dimensions `json:"dimensions,omitempty"`
	Meta            *MetaInfo   `json:"meta,omitempty"`
	Reviews         []Review    `json:"reviews"`
	SimilarProducts []Product   `json:"similar_products"`
}
