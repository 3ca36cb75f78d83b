package http

import (
	"net/http"
)

type createReviewRequest struct {
	BorrowID int32  `json:"borrow_id"`
	Rating   int32  `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	review, err := h.reviews.CreateReview(r.Context(), userID(r), req.BorrowID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, avg, err := h.reviews.ListUserReviews(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":        reviews,
		"average_rating": avg,
	})
}
