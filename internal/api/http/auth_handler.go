package http

import (
	"net/http"

	"borrowhood-backend/internal/domain"
)

type requestOTPRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	code, err := h.auth.RequestOTP(r.Context(), req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]string{"message": "OTP sent"}
	if code != "" {
		// Demo mode only.
		resp["code"] = code
	}
	writeJSON(w, http.StatusOK, resp)
}

type verifyOTPRequest struct {
	Phone    string           `json:"phone"`
	Code     string           `json:"code"`
	Name     string           `json:"name,omitempty"`
	UPI      string           `json:"upi,omitempty"`
	Location *domain.Location `json:"location,omitempty"`
}

type verifyOTPResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, token, err := h.auth.VerifyOTP(r.Context(), req.Phone, req.Code, req.Name, req.UPI, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyOTPResponse{User: user, Token: token})
}
