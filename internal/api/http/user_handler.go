package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"borrowhood-backend/internal/domain"
)

func pathID(r *http.Request) int32 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id)
}

func queryFloat(r *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	return v
}

func queryInt(r *http.Request, key string) int32 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	return int32(v)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name     string           `json:"name,omitempty"`
	Email    string           `json:"email,omitempty"`
	UPI      string           `json:"upi,omitempty"`
	Location *domain.Location `json:"location,omitempty"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), userID(r), req.Name, req.Email, req.UPI, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.GetStats(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) NearbyUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListNearbyUsers(r.Context(), userID(r),
		queryFloat(r, "lat"), queryFloat(r, "lon"), queryFloat(r, "radius_km"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *Handler) GetTrustScore(w http.ResponseWriter, r *http.Request) {
	ts, err := h.trustScores.GetByUser(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}
