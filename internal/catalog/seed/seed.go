// Package seed provides the sample marketplace listings used for local
// development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/campuscart/campuscart/internal/catalog/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type listing struct {
	title       string
	description string
	price       string
	category    domain.Category
	condition   domain.Condition
	sellerID    string
	sellerName  string
	location    string
	views       int64
	featured    bool
	tags        []string
}

var listings = []listing{
	{
		title:       "Calculus Early Transcendentals (9th Edition)",
		description: "Comprehensive calculus textbook in excellent condition. Minimal highlighting, all pages intact.",
		price:       "75.00",
		category:    domain.CategoryTextbooks,
		condition:   domain.ConditionLikeNew,
		sellerID:    "user-1",
		sellerName:  "Sarah Johnson",
		location:    "Main Campus",
		views:       156,
		featured:    true,
		tags:        []string{"math", "textbook", "calculus"},
	},
	{
		title:       "MacBook Pro 13\" (2021, M1)",
		description: "Gently used MacBook Pro with M1 chip, 8GB RAM, 256GB SSD. Includes charger and original box.",
		price:       "850.00",
		category:    domain.CategoryElectronics,
		condition:   domain.ConditionGood,
		sellerID:    "user-2",
		sellerName:  "Mike Chen",
		location:    "North Campus",
		views:       289,
		featured:    true,
		tags:        []string{"laptop", "apple", "electronics"},
	},
	{
		title:       "Twin XL Bed Sheet Set - Navy Blue",
		description: "Brand new twin XL sheet set, perfect for dorm beds. 100% cotton, never used.",
		price:       "25.00",
		category:    domain.CategoryDormSupplies,
		condition:   domain.ConditionNew,
		sellerID:    "user-3",
		sellerName:  "Emma Davis",
		location:    "West Dorms",
		views:       78,
		tags:        []string{"bedding", "dorm", "sheets"},
	},
	{
		title:       "IKEA Study Desk - White",
		description: "Compact study desk, perfect for small dorm rooms. Easy to assemble, minor scratches.",
		price:       "40.00",
		category:    domain.CategoryFurniture,
		condition:   domain.ConditionGood,
		sellerID:    "user-4",
		sellerName:  "Alex Thompson",
		location:    "East Campus",
		views:       134,
		tags:        []string{"furniture", "desk", "study"},
	},
	{
		title:       "Nike Running Shoes - Size 10",
		description: "Barely worn Nike running shoes, size 10. Great for jogging around campus.",
		price:       "55.00",
		category:    domain.CategorySports,
		condition:   domain.ConditionLikeNew,
		sellerID:    "user-5",
		sellerName:  "Jordan Lee",
		location:    "Sports Complex",
		views:       92,
		tags:        []string{"shoes", "sports", "nike"},
	},
	{
		title:       "Introduction to Psychology Textbook",
		description: "PSY 101 required textbook. Good condition with some highlighting.",
		price:       "45.00",
		category:    domain.CategoryTextbooks,
		condition:   domain.ConditionGood,
		sellerID:    "user-6",
		sellerName:  "Lisa Martinez",
		location:    "Library",
		views:       167,
		featured:    true,
		tags:        []string{"textbook", "psychology", "101"},
	},
	{
		title:       "Mini Fridge - 3.2 Cu Ft",
		description: "Compact fridge with freezer compartment. Works perfectly, ideal for dorm rooms.",
		price:       "90.00",
		category:    domain.CategoryDormSupplies,
		condition:   domain.ConditionGood,
		sellerID:    "user-7",
		sellerName:  "Chris Park",
		location:    "South Dorms",
		views:       203,
		tags:        []string{"fridge", "appliance", "dorm"},
	},
	{
		title:       "University Hoodie - Size M",
		description: "Official university hoodie, worn a handful of times. No stains or damage.",
		price:       "20.00",
		category:    domain.CategoryClothing,
		condition:   domain.ConditionLikeNew,
		sellerID:    "user-8",
		sellerName:  "Taylor Kim",
		location:    "Student Center",
		views:       64,
		tags:        []string{"hoodie", "clothing", "university"},
	},
}

// Products returns freshly built Product values for every sample listing.
func Products() []*domain.Product {
	now := time.Now().UTC()
	products := make([]*domain.Product, len(listings))
	for i, l := range listings {
		// Stagger creation times so the newest sort has a stable order.
		createdAt := now.Add(-time.Duration(i) * 24 * time.Hour)
		products[i] = &domain.Product{
			ID:          uuid.NewString(),
			Title:       l.title,
			Description: l.description,
			Price:       decimal.RequireFromString(l.price),
			Category:    l.category,
			Condition:   l.condition,
			Images:      []string{"/placeholders/product.svg"},
			SellerID:    l.sellerID,
			SellerName:  l.sellerName,
			Location:    l.location,
			Views:       l.views,
			IsFeatured:  l.featured,
			Tags:        l.tags,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
	}
	return products
}

// Run wipes the catalog and inserts the sample listings.
func Run(ctx context.Context, repo repository.ProductRepository) (int, error) {
	if err := repo.DeleteAllProducts(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear catalog: %w", err)
	}

	products := Products()
	for _, p := range products {
		if err := repo.CreateProduct(ctx, p); err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", p.Title, err)
		}
	}

	return len(products), nil
}
