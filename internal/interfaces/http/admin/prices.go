package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/common"
)

func (h *Handler) priceUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, fuel, ok := h.parseEditTarget(w, r)
		if !ok {
			return
		}

		var req priceUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil || req.Price == nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "価格が指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := h.catalog.UpdatePrice(ctx, storeID, fuel, *req.Price)
		if err != nil {
			h.writeEditError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildCatalogResponse(updated))
	}
}

func (h *Handler) discountUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, fuel, ok := h.parseEditTarget(w, r)
		if !ok {
			return
		}

		var req discountUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil || req.Discount == nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "値引額が指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := h.catalog.UpdateDiscount(ctx, storeID, fuel, *req.Discount)
		if err != nil {
			h.writeEditError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildCatalogResponse(updated))
	}
}

// parseEditTarget は編集対象の店舗 ID と油種を URL から取り出す。
// 存在しない店舗 ID はここでは弾かない(無操作として下層が処理する)。
func (h *Handler) parseEditTarget(w http.ResponseWriter, r *http.Request) (string, catalogdomain.FuelType, bool) {
	storeID := strings.TrimSpace(chi.URLParam(r, "id"))
	if storeID == "" {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
		return "", "", false
	}

	fuel, err := catalogdomain.ParseFuelType(strings.TrimSpace(chi.URLParam(r, "fuel")))
	if err != nil {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "油種の指定が不正です"})
		return "", "", false
	}
	return storeID, fuel, true
}

func (h *Handler) writeEditError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalogapp.ErrInvalidValue) {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "価格・値引額の指定が不正です"})
		return
	}
	h.logger.Printf("カタログの更新に失敗: %v", err)
	common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "価格の更新に失敗しました"})
}
