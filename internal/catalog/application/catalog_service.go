package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

// catalogService implements Service.
// メモリ上のカタログを唯一の正とし、編集が成立するたびにリポジトリへ書き戻す。
type catalogService struct {
	mu      sync.RWMutex
	repo    CatalogRepository
	logger  *log.Logger
	catalog catalogdomain.Catalog
}

// NewService は永続化済みカタログを読み込んでサービスを組み立てる。
// 状態が未作成または壊れている場合は組み込みの種カタログで起動する。
// ここで接続障害などの想定外エラーは呼び出し側へ返し、起動可否を委ねる。
func NewService(ctx context.Context, repo CatalogRepository, logger *log.Logger) (Service, error) {
	catalog, err := repo.LoadCatalog(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrStateNotFound):
		logger.Printf("カタログ状態が未作成のため種データで起動します")
		catalog = catalogdomain.SeedCatalog()
	case errors.Is(err, ErrMalformedState):
		logger.Printf("カタログ状態が壊れているため種データへフォールバックします: %v", err)
		catalog = catalogdomain.SeedCatalog()
	default:
		return nil, fmt.Errorf("カタログ状態の読み込みに失敗: %w", err)
	}

	return &catalogService{repo: repo, logger: logger, catalog: catalog}, nil
}

func (s *catalogService) Current() catalogdomain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone()
}

func (s *catalogService) Search(query string) catalogdomain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalogdomain.Filter(s.catalog, query).Clone()
}

func (s *catalogService) FindStore(id string) (catalogdomain.StoreRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.FindByID(id)
}

func (s *catalogService) UpdatePrice(ctx context.Context, storeID string, fuel catalogdomain.FuelType, price int) (catalogdomain.Catalog, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: price %d", ErrInvalidValue, price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.catalog.FindByID(storeID); ok {
		if discount := store.Discounts[fuel]; discount > price {
			return nil, fmt.Errorf("%w: price %d is below discount %d", ErrInvalidValue, price, discount)
		}
	}

	next := catalogdomain.SetPrice(s.catalog, storeID, fuel, price)
	return s.commit(ctx, next)
}

func (s *catalogService) UpdateDiscount(ctx context.Context, storeID string, fuel catalogdomain.FuelType, discount int) (catalogdomain.Catalog, error) {
	if discount < 0 {
		return nil, fmt.Errorf("%w: discount %d", ErrInvalidValue, discount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 値引額が一般価格を上回ると団員価格が負になるため受理しない。
	if store, ok := s.catalog.FindByID(storeID); ok {
		if price := store.Prices[fuel]; discount > price {
			return nil, fmt.Errorf("%w: discount %d exceeds price %d", ErrInvalidValue, discount, price)
		}
	}

	next := catalogdomain.SetDiscount(s.catalog, storeID, fuel, discount)
	return s.commit(ctx, next)
}

// commit は編集結果を永続化してからメモリ上の状態を差し替える。
// 書き込みに失敗した場合は旧状態を維持する。
func (s *catalogService) commit(ctx context.Context, next catalogdomain.Catalog) (catalogdomain.Catalog, error) {
	if err := s.repo.SaveCatalog(ctx, next); err != nil {
		return nil, fmt.Errorf("カタログの保存に失敗: %w", err)
	}
	s.catalog = next
	return next.Clone(), nil
}
