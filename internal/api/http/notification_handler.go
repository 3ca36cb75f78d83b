package http

import (
	"net/http"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, total, err := h.notification.GetNotifications(r.Context(), userID(r),
		queryInt(r, "page"), queryInt(r, "page_size"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
	})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notification.MarkAsRead(r.Context(), userID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}
