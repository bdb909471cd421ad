package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/smartring-shop/order-backend/internal/order"
	"github.com/smartring-shop/order-backend/internal/payment"
)

// OrderHandler handles the checkout, webhook and order query endpoints.
type OrderHandler struct {
	svc      order.Service
	verifier payment.WebhookVerifier
}

func NewOrderHandler(svc order.Service, verifier payment.WebhookVerifier) *OrderHandler {
	return &OrderHandler{svc: svc, verifier: verifier}
}

type createPaymentIntentRequest struct {
	Amount  int64  `json:"amount"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
	Size    string `json:"size"`
	Color   string `json:"color"`
}

func (r createPaymentIntentRequest) validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be a positive number of cents")
	}
	required := []struct {
		value string
		name  string
	}{
		{r.Name, "name"},
		{r.Email, "email"},
		{r.Address, "address"},
		{r.City, "city"},
		{r.Postal, "postal"},
		{r.Country, "country"},
		{r.Size, "size"},
		{r.Color, "color"},
	}
	for _, f := range required {
		if f.value == "" {
			return errors.New(f.name + " is required")
		}
	}
	return nil
}

type createPaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      string `json:"orderId"`
}

func (h *OrderHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createPaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Checkout(r.Context(), order.CheckoutInput{
		Amount:     req.Amount,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.Postal,
		Country:    req.Country,
		Size:       req.Size,
		Color:      req.Color,
	})
	if err != nil {
		log.Error().Err(err).Msg("handler: checkout failed")
		respondWithError(w, http.StatusBadRequest, "unable to create payment intent")
		return
	}

	respondWithJSON(w, http.StatusOK, createPaymentIntentResponse{
		ClientSecret: res.ClientSecret,
		OrderID:      res.OrderNumber,
	})
}

// Webhook verifies the processor signature and reacts to succeeded payments.
// After the signature passes it always answers 200, so the processor does not
// retry events that were handled (whatever happened to the emails).
func (h *OrderHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	event, err := h.verifier.Verify(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn().Err(err).Msg("handler: webhook verification failed")
		respondWithError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	if event.Type == payment.EventPaymentSucceeded {
		if err := h.svc.HandlePaymentSucceeded(r.Context(), event.PaymentReference); err != nil {
			log.Error().Err(err).Str("payment_reference", event.PaymentReference).Msg("handler: failed to process payment event")
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

type orderResponse struct {
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderId")
	if number == "" {
		respondWithError(w, http.StatusBadRequest, "order id is required")
		return
	}

	o, err := h.svc.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error().Err(err).Str("order_number", number).Msg("handler: failed to fetch order")
		respondWithError(w, http.StatusInternalServerError, "unable to fetch order")
		return
	}

	respondWithJSON(w, http.StatusOK, orderResponse{
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt,
	})
}

type adminOrder struct {
	ID               int64     `json:"id"`
	OrderNumber      string    `json:"order_number"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	Total            float64   `json:"total"`
	Status           string    `json:"status"`
	SupplierNotified bool      `json:"supplier_notified"`
	CreatedAt        time.Time `json:"created_at"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to list orders")
		respondWithError(w, http.StatusInternalServerError, "unable to fetch orders")
		return
	}

	list := make([]adminOrder, 0, len(orders))
	for _, o := range orders {
		list = append(list, adminOrder{
			ID:               o.ID,
			OrderNumber:      o.OrderNumber,
			CustomerName:     o.CustomerName,
			CustomerEmail:    o.CustomerEmail,
			Total:            o.TotalAmount.InexactFloat64(),
			Status:           o.Status.String(),
			SupplierNotified: o.SupplierNotified,
			CreatedAt:        o.CreatedAt,
		})
	}

	respondWithJSON(w, http.StatusOK, map[string][]adminOrder{"orders": list})
}

func (h *OrderHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}
