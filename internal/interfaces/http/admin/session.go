package admin

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/common"
)

func (h *Handler) gestureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := h.sessions.Gesture(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, buildSessionResponse(snap))
	}
}

func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, buildSessionResponse(h.sessions.Snapshot()))
	}
}

func (h *Handler) toggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := h.sessions.RequestToggle()
		common.WriteJSON(h.logger, w, http.StatusOK, buildSessionResponse(snap))
	}
}

func (h *Handler) confirmHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		outcome := h.sessions.Confirm(r.Context(), req.Password)
		if !outcome.Authenticated {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]any{
				"error":   "パスワードが違います",
				"session": buildSessionResponse(outcome.Session),
			})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, confirmResponse{
			Session:   buildSessionResponse(outcome.Session),
			EditToken: outcome.EditToken,
		})
	}
}

func (h *Handler) cancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := h.sessions.Cancel()
		common.WriteJSON(h.logger, w, http.StatusOK, buildSessionResponse(snap))
	}
}
