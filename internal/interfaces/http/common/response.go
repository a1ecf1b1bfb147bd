package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON は JSON レスポンスの共通書き込み処理。
// Content-Type 設定とエンコード失敗時のログ出力を一元化する。
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}
