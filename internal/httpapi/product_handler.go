package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/campuscart/campuscart/internal/catalog/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

func NewProductHandler(repo repository.ProductRepository, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type CreateProductDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Images      []string `json:"images"`
	SellerID    string   `json:"seller_id"`
	SellerName  string   `json:"seller_name"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
}

type UpdateProductDTO struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	Images      []string `json:"images"`
	Location    *string  `json:"location"`
	IsFeatured  *bool    `json:"is_featured"`
	Tags        []string `json:"tags"`
}

type ProductsResponse struct {
	Products []*domain.Product `json:"products"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	products, err := h.repo.ListProducts(ctx, filter)
	if err != nil {
		log.Printf("failed to list products: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.repo.ListFeatured(ctx)
	if err != nil {
		log.Printf("failed to list featured products: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list featured products")
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to get product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	// View bump is best effort; a detail read never fails because of it.
	if err := h.repo.IncrementViews(ctx, id); err != nil {
		log.Printf("failed to increment views for %s: %v", id, err)
	} else {
		product.Views++
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "invalid_title", "title must not be empty")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative decimal")
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category", err.Error())
		return
	}

	condition, err := domain.ParseCondition(req.Condition)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_condition", err.Error())
		return
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Category:    category,
		Condition:   condition,
		Images:      req.Images,
		SellerID:    req.SellerID,
		SellerName:  req.SellerName,
		Location:    req.Location,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.CreateProduct(ctx, product); err != nil {
		log.Printf("failed to create product: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to get product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	var req UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := applyUpdate(product, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	product.UpdatedAt = time.Now().UTC()

	if err := h.repo.UpdateProduct(ctx, product); err != nil {
		log.Printf("failed to update product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	err := h.repo.DeleteProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to delete product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilter validates query parameters against the closed enum sets;
// unrecognized values are rejected rather than silently ignored.
func parseFilter(r *http.Request) (domain.Filter, error) {
	var filter domain.Filter
	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.Category = &category
	}

	for _, raw := range query["condition"] {
		condition, err := domain.ParseCondition(raw)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.Conditions = append(filter.Conditions, condition)
	}

	if raw := query.Get("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid min_price %q", raw)
		}
		filter.MinPrice = &price
	}

	if raw := query.Get("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid max_price %q", raw)
		}
		filter.MaxPrice = &price
	}

	filter.Search = query.Get("q")

	if raw := query.Get("sort"); raw != "" {
		sort, err := domain.ParseSortOrder(raw)
		if err != nil {
			return domain.Filter{}, err
		}
		filter.Sort = sort
	}

	return filter, nil
}

func applyUpdate(product *domain.Product, req *UpdateProductDTO) error {
	if req.Title != nil {
		if *req.Title == "" {
			return fmt.Errorf("title must not be empty")
		}
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			return fmt.Errorf("price must be a non-negative decimal")
		}
		product.Price = price
	}
	if req.Category != nil {
		category, err := domain.ParseCategory(*req.Category)
		if err != nil {
			return err
		}
		product.Category = category
	}
	if req.Condition != nil {
		condition, err := domain.ParseCondition(*req.Condition)
		if err != nil {
			return err
		}
		product.Condition = condition
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Location != nil {
		product.Location = *req.Location
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	return nil
}
