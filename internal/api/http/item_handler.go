package http

import (
	"net/http"

	"borrowhood-backend/internal/domain"
)

type addItemRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Category      string               `json:"category"`
	Condition     domain.ItemCondition `json:"condition,omitempty"`
	Location      *domain.Location     `json:"location,omitempty"`
	MaxBorrowDays int32                `json:"max_borrow_days,omitempty"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item := &domain.Item{
		OwnerID:       userID(r),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Condition:     req.Condition,
		MaxBorrowDays: req.MaxBorrowDays,
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if err := h.items.AddItem(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.GetItem(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateItemRequest struct {
	Description   string               `json:"description,omitempty"`
	Condition     domain.ItemCondition `json:"condition,omitempty"`
	Status        domain.ItemStatus    `json:"status,omitempty"`
	MaxBorrowDays int32                `json:"max_borrow_days,omitempty"`
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.items.UpdateItem(r.Context(), userID(r), pathID(r), req.Description, req.Condition, req.Status, req.MaxBorrowDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.items.DeleteItem(r.Context(), userID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.items.SearchItems(r.Context(), q.Get("category"), q.Get("q"), queryInt(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) NearbyItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.NearbyItems(r.Context(),
		queryFloat(r, "lat"), queryFloat(r, "lon"), queryFloat(r, "radius_km"),
		r.URL.Query().Get("category"), queryInt(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
