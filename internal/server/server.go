package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	adminapp "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/application"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/config"
	mongodoc "github.com/yoshino-ss/yoshino-site-services/api/internal/infrastructure/mongo"
	redisinfra "github.com/yoshino-ss/yoshino-site-services/api/internal/infrastructure/redis"
	adminhttp "github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/admin"
	publichttp "github.com/yoshino-ss/yoshino-site-services/api/internal/interfaces/http/public"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/tips"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
// DDD の Interface 層に相当し、アプリケーションサービスをルータへ接続する責務を担う。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	redisClient    *redisinfra.Client
	catalogService application.Service
	sessionService adminapp.SessionService
	tipService     *tips.Service
	addr           string
	allowedOrigins []string
}

// Run はHTTPサーバーを起動し、Public/Adminのルーティングやミドルウェアを組み立てる。
// インフラ初期化に限定し、ドメインロジックをここに書かないことで層の責務を守る。
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:  s.logger,
		Catalog: s.catalogService,
		Tips:    s.tipService,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:   s.logger,
		Sessions: s.sessionService,
		Catalog:  s.catalogService,
	})
	router.Route("/admin", adminHandler.Register)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
// ドメインの状態ではなくインフラ状態のみを返す設計。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// writeJSON は JSON レスポンスの共通書き込み処理。
// Content-Type 設定とエラーログ出力を一元化して重複を避ける。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// shutdown は MongoDB と Redis をタイムアウト付きで切断し、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Printf("Redis 切断時にエラー: %v", err)
		}
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
// アプリケーションの外側で扱うべき OS 依存の関心事をここへ閉じ込める。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と各クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// 依存解決の起点となるファクトリとして機能する。redisClient は nil 可(ヒントキャッシュ無効)。
func New(ctx context.Context, cfg config.Config, client *mongo.Client, redisClient *redisinfra.Client) (*Server, error) {
	database := client.Database(cfg.MongoDatabase)
	stateRepo := mongodoc.NewStateRepository(database, cfg.StateCollection)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	catalogService, err := application.NewService(loadCtx, stateRepo, cfg.ServerLog)
	if err != nil {
		return nil, fmt.Errorf("店舗カタログの初期化に失敗: %w", err)
	}

	unlocked, err := stateRepo.LoadUnlockFlag(loadCtx)
	if err != nil {
		cfg.ServerLog.Printf("管理フラグの読み込みに失敗したため施錠状態で起動します: %v", err)
		unlocked = false
	}

	sessionService := adminapp.NewSessionService(adminapp.Config{
		Logger:      cfg.ServerLog,
		Repo:        stateRepo,
		AdminSecret: cfg.AdminSecret,
		TokenSecret: cfg.EditTokenSecret,
		TokenIssuer: cfg.EditTokenIssuer,
		TokenTTL:    cfg.EditTokenTTL,
		Unlocked:    unlocked,
	})

	var tipCache tips.Cache
	if redisClient != nil {
		tipCache = redisinfra.NewTipCache(redisClient, cfg.TipCacheTTL)
	}
	tipClient := tips.NewClient(cfg.TipEndpoint, cfg.TipTimeout, cfg.ServerLog)
	tipService := tips.NewService(tipClient, tipCache, cfg.ServerLog)

	return &Server{
		logger:         cfg.ServerLog,
		client:         client,
		redisClient:    redisClient,
		catalogService: catalogService,
		sessionService: sessionService,
		tipService:     tipService,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}, nil
}
