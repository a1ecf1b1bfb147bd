package application

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	admindomain "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/domain"
)

// UnlockFlagRepository は「管理ボタンが見えている」フラグの永続化を抽象する。
type UnlockFlagRepository interface {
	LoadUnlockFlag(ctx context.Context) (bool, error)
	SaveUnlockFlag(ctx context.Context, unlocked bool) error
}

// SessionSnapshot は画面へ返す管理セッションの読み取りビュー。
type SessionSnapshot struct {
	State       admindomain.GateState
	PromptOpen  bool
	ErrorActive bool
}

// ConfirmOutcome は確認ダイアログの決定操作の結果。
// 編集モードが新たに有効になったときだけ EditToken が入る。
type ConfirmOutcome struct {
	Session       SessionSnapshot
	Authenticated bool
	EditToken     string
}

// SessionService は管理ゲートのユースケース。
type SessionService interface {
	Snapshot() SessionSnapshot
	Gesture(ctx context.Context) SessionSnapshot
	RequestToggle() SessionSnapshot
	Confirm(ctx context.Context, password string) ConfirmOutcome
	Cancel() SessionSnapshot
	// VerifyEditToken は編集系エンドポイントの Bearer トークンを検証する。
	VerifyEditToken(token string) error
}

// Config provides dependencies for the session service.
type Config struct {
	Logger      *log.Logger
	Repo        UnlockFlagRepository
	AdminSecret string
	TokenSecret []byte
	TokenIssuer string
	TokenTTL    time.Duration
	// Unlocked には起動時に読み出した解放フラグを渡す。
	Unlocked bool
	// Now は省略時 time.Now。テストで時刻を固定するために差し替える。
	Now func() time.Time
}

type sessionService struct {
	mu          sync.Mutex
	gate        *admindomain.Gate
	repo        UnlockFlagRepository
	logger      *log.Logger
	now         func() time.Time
	tokenSecret []byte
	tokenIssuer string
	tokenTTL    time.Duration
}

// NewSessionService はゲートを初期化しセッションサービスを返す。
// 参照実装はブラウザ 1 枚のページなので、セッションはサーバー全体で 1 つだけ持つ。
func NewSessionService(cfg Config) SessionService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionService{
		gate:        admindomain.NewGate(cfg.AdminSecret, cfg.Unlocked),
		repo:        cfg.Repo,
		logger:      cfg.Logger,
		now:         now,
		tokenSecret: cfg.TokenSecret,
		tokenIssuer: cfg.TokenIssuer,
		tokenTTL:    ttl,
	}
}

func (s *sessionService) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *sessionService) Gesture(ctx context.Context) SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate.Gesture(s.now()) {
		// 解放は次回起動にも引き継ぐ。保存失敗でも今回のセッションは解放済みのまま進める。
		if err := s.repo.SaveUnlockFlag(ctx, true); err != nil {
			s.logger.Printf("解放フラグの保存に失敗: %v", err)
		}
	}
	return s.snapshotLocked()
}

func (s *sessionService) RequestToggle() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.RequestToggle()
	return s.snapshotLocked()
}

func (s *sessionService) Confirm(ctx context.Context, password string) ConfirmOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasUnlocked := s.gate.EditModeActive()
	ok := s.gate.Confirm(password, s.now())

	outcome := ConfirmOutcome{Session: s.snapshotLocked(), Authenticated: ok}
	if ok && !wasUnlocked && s.gate.EditModeActive() {
		token, err := s.issueEditToken()
		if err != nil {
			s.logger.Printf("編集トークンの発行に失敗: %v", err)
		} else {
			outcome.EditToken = token
		}
	}
	return outcome
}

func (s *sessionService) Cancel() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Cancel()
	return s.snapshotLocked()
}

func (s *sessionService) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		State:       s.gate.State(),
		PromptOpen:  s.gate.PromptOpen(),
		ErrorActive: s.gate.ErrorActive(s.now()),
	}
}

type editClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

func (s *sessionService) issueEditToken() (string, error) {
	now := s.now()
	claims := editClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    s.tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Scope: "edit",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
}

// VerifyEditToken は署名方式・Issuer・scope を検証する。
// 編集モードを手動で終了しても発行済みトークンは失効せず、期限切れを待つ。
func (s *sessionService) VerifyEditToken(tokenString string) error {
	claims := &editClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.tokenSecret, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return fmt.Errorf("アクセストークンが無効です")
	}
	if s.tokenIssuer != "" && claims.Issuer != s.tokenIssuer {
		return fmt.Errorf("アクセストークンが無効です")
	}
	if claims.Scope != "edit" {
		return fmt.Errorf("アクセストークンが無効です")
	}
	return nil
}
