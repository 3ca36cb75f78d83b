package http

import (
	"io"
	"net/http"
)

type createOrderRequest struct {
	BorrowID    int32 `json:"borrow_id"`
	AmountCents int32 `json:"amount_cents"`
}

func (h *Handler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.payments.CreateOrder(r.Context(), userID(r), req.BorrowID, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

type confirmPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.payments.ConfirmPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// PaymentWebhook is unauthenticated; the gateway signature in the header
// is the only trust anchor.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, err)
		return
	}
	signature := r.Header.Get("X-Webhook-Signature")
	if err := h.payments.HandleWebhook(r.Context(), signature, body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
