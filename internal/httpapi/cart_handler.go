package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	cart "github.com/campuscart/campuscart/internal/cart/service"
	"github.com/campuscart/campuscart/internal/catalog/repository"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog repository.ProductRepository
	timeout time.Duration
}

func NewCartHandler(carts *cart.Manager, catalog repository.ProductRepository, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type UpdateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	agg := h.carts.Cart(ctx, getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, agg.Snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	// Snapshot the product at add time; later catalog edits leave the
	// cart line untouched.
	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to validate product %s: %v", req.ProductID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate product")
		return
	}

	agg := h.carts.Cart(ctx, getSessionID(r.Context()))
	agg.AddItem(ctx, *product, quantity)

	respondJSON(w, http.StatusCreated, agg.Snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	var req UpdateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	agg := h.carts.Cart(ctx, getSessionID(r.Context()))
	agg.UpdateQuantity(ctx, productID, req.Quantity)

	respondJSON(w, http.StatusOK, agg.Snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	agg := h.carts.Cart(ctx, getSessionID(r.Context()))
	agg.RemoveItem(ctx, productID)

	respondJSON(w, http.StatusOK, agg.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	agg := h.carts.Cart(ctx, getSessionID(r.Context()))
	agg.Clear(ctx)

	respondJSON(w, http.StatusOK, agg.Snapshot())
}
