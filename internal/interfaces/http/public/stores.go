package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/common"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("keyword")

		stores := h.catalog.Search(keyword)
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreListResponse(stores))
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		store, ok := h.catalog.FindStore(idParam)
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりません"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponse(store))
	}
}
