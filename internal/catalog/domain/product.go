package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the closed set of marketplace listing categories.
type Category string

const (
	CategoryTextbooks    Category = "textbooks"
	CategoryElectronics  Category = "electronics"
	CategoryDormSupplies Category = "dorm-supplies"
	CategoryFurniture    Category = "furniture"
	CategoryClothing     Category = "clothing"
	CategorySports       Category = "sports"
	CategoryOther        Category = "other"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryTextbooks, CategoryElectronics, CategoryDormSupplies,
		CategoryFurniture, CategoryClothing, CategorySports, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Condition is the closed set of listing condition ratings.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return Condition(s), nil
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// SortOrder enumerates the supported listing sort orders.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortPopular   SortOrder = "popular"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortNewest, SortPriceLow, SortPriceHigh, SortPopular:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Condition   Condition       `json:"condition"`
	Images      []string        `json:"images"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Location    string          `json:"location"`
	Views       int64           `json:"views"`
	IsFeatured  bool            `json:"is_featured"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Filter describes the listing query surface. Nil pointer fields and empty
// slices mean "no constraint". An empty Sort falls back to SortNewest.
type Filter struct {
	Category   *Category
	Conditions []Condition
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	Sort       SortOrder
}
