package public

import (
	"net/http"

	"github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/common"
)

// tipHandler は本日のドライブ豆知識を返す。
// 座標は任意指定で、欠けていれば既定座標へフォールバックするため失敗しない。
func (h *Handler) tipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		lat := common.ParseFloat(query.Get("lat"))
		lng := common.ParseFloat(query.Get("lng"))

		tip := h.tips.TipOfTheDay(r.Context(), lat, lng)
		common.WriteJSON(h.logger, w, http.StatusOK, buildTipResponse(tip))
	}
}
