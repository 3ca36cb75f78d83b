package http

import (
	"net/http"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/service"
)

type createBorrowRequest struct {
	ItemID                int32               `json:"item_id"`
	BorrowDate            *int64              `json:"borrow_date,omitempty"`
	ExpectedReturnDate    *int64              `json:"expected_return_date,omitempty"`
	RequestedDurationDays int32               `json:"requested_duration_days,omitempty"`
	Notes                 string              `json:"notes,omitempty"`
	Payment               domain.PaymentTerms `json:"payment,omitempty"`
}

func (h *Handler) CreateBorrow(w http.ResponseWriter, r *http.Request) {
	var req createBorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bw, err := h.borrows.CreateBorrowRequest(r.Context(), userID(r), service.CreateBorrowInput{
		ItemID:                req.ItemID,
		BorrowDate:            req.BorrowDate,
		ExpectedReturnDate:    req.ExpectedReturnDate,
		RequestedDurationDays: req.RequestedDurationDays,
		Notes:                 req.Notes,
		Payment:               req.Payment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bw)
}

type approveBorrowRequest struct {
	Approved             bool                 `json:"approved"`
	Reason               string               `json:"reason,omitempty"`
	ApprovedDurationDays int32                `json:"approved_duration_days,omitempty"`
	ApprovedPayment      *domain.PaymentTerms `json:"approved_payment,omitempty"`
}

func (h *Handler) ApproveBorrow(w http.ResponseWriter, r *http.Request) {
	var req approveBorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bw, err := h.borrows.ApproveBorrowRequest(r.Context(), userID(r), pathID(r), service.ApprovalInput{
		Approved:             req.Approved,
		Reason:               req.Reason,
		ApprovedDurationDays: req.ApprovedDurationDays,
		ApprovedPayment:      req.ApprovedPayment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bw)
}

type cancelBorrowRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) CancelBorrow(w http.ResponseWriter, r *http.Request) {
	var req cancelBorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bw, err := h.borrows.CancelBorrowRequest(r.Context(), userID(r), pathID(r), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bw)
}

type returnBorrowRequest struct {
	Comment string `json:"comment,omitempty"`
}

func (h *Handler) ReturnBorrow(w http.ResponseWriter, r *http.Request) {
	var req returnBorrowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bw, err := h.borrows.MarkReturned(r.Context(), userID(r), pathID(r), req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bw)
}

func (h *Handler) GetBorrow(w http.ResponseWriter, r *http.Request) {
	bw, err := h.borrows.GetBorrow(r.Context(), userID(r), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bw)
}

func (h *Handler) ListActiveBorrows(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.borrows.ListActiveBorrows(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"borrows": borrows})
}

func (h *Handler) ListBorrowHistory(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.borrows.ListBorrowHistory(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"borrows": borrows})
}

func (h *Handler) ListReceivedRequests(w http.ResponseWriter, r *http.Request) {
	borrows, err := h.borrows.ListReceivedRequests(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"borrows": borrows})
}
