package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/campuscart/campuscart/internal/checkout/domain"
	"github.com/campuscart/campuscart/internal/checkout/repository"
	"github.com/campuscart/campuscart/internal/checkout/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout *service.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutDTO struct {
	ShippingAddress domain.Address `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ShippingAddress.Street == "" || req.ShippingAddress.City == "" {
		respondError(w, http.StatusBadRequest, "invalid_address", "shipping address requires street and city")
		return
	}
	if req.PaymentMethod == "" {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must not be empty")
		return
	}

	order, err := h.checkout.Checkout(ctx, getSessionID(r.Context()), req.ShippingAddress, req.PaymentMethod)
	if errors.Is(err, service.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "cannot check out an empty cart")
		return
	}
	if err != nil {
		log.Printf("checkout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.checkout.ListOrders(ctx, getSessionID(r.Context()))
	if err != nil {
		log.Printf("failed to list orders: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	order, err := h.checkout.GetOrder(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("failed to get order %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get order")
		return
	}

	// Orders are scoped to the session that placed them.
	if order.SessionID != getSessionID(r.Context()) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
