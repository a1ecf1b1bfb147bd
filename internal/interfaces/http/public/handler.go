package public

import (
	"log"

	"github.com/go-chi/chi/v5"
	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/tips"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger  *log.Logger
	catalog catalogapp.Service
	tips    *tips.Service
}

// Config provides dependencies for Handler.
type Config struct {
	Logger  *log.Logger
	Catalog catalogapp.Service
	Tips    *tips.Service
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		catalog: cfg.Catalog,
		tips:    cfg.Tips,
	}
}

// Register mounts public routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Get("/tips", h.tipHandler())
}
