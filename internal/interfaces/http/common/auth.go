package common

import (
	"log"
	"net/http"
	"strings"
)

// RequireEditToken は編集モード用 Bearer トークンを検証するミドルウェアを返す。
// トークンの発行・検証そのものはセッションサービス側の責務で、ここでは
// Authorization ヘッダーの取り回しとエラー応答だけを扱う。
func RequireEditToken(logger *log.Logger, verify func(token string) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				WriteJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": "Authorization ヘッダーがありません"})
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				WriteJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": "Bearer トークンを指定してください"})
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if tokenString == "" {
				WriteJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": "アクセストークンが空です"})
				return
			}

			if err := verify(tokenString); err != nil {
				WriteJSON(logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
