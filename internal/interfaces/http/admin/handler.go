package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/application"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/common"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	sessions adminapp.SessionService
	catalog  catalogapp.Service
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Sessions adminapp.SessionService
	Catalog  catalogapp.Service
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		sessions: cfg.Sessions,
		catalog:  cfg.Catalog,
	}
}

// Register mounts admin routes onto router.
// セッション系は誰でも叩ける(隠しジェスチャー自体が入口のため)が、
// 価格・値引の編集は編集トークンの提示を必須にする。
func (h *Handler) Register(r chi.Router) {
	r.Post("/gesture", h.gestureHandler())
	r.Get("/session", h.sessionHandler())
	r.Post("/toggle", h.toggleHandler())
	r.Post("/confirm", h.confirmHandler())
	r.Post("/cancel", h.cancelHandler())

	r.Group(func(r chi.Router) {
		r.Use(common.RequireEditToken(h.logger, h.sessions.VerifyEditToken))
		r.Patch("/stores/{id}/prices/{fuel}", h.priceUpdateHandler())
		r.Patch("/stores/{id}/discounts/{fuel}", h.discountUpdateHandler())
	})
}
