package application

import (
	"context"
	"errors"

	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

var (
	// ErrStateNotFound は永続化されたカタログがまだ存在しないことを表す。
	ErrStateNotFound = errors.New("catalog state not found")
	// ErrMalformedState は永続化データが復元できない・形状検証を通らないことを表す。
	// 受け取った側は種カタログへフォールバックし、プロセスを止めない。
	ErrMalformedState = errors.New("catalog state is malformed")
	// ErrInvalidValue は負の金額や価格を超える値引など、受理できない編集値を表す。
	ErrInvalidValue = errors.New("invalid price or discount value")
)

// CatalogRepository はカタログ本体の永続化を抽象する。
// Save は編集が成立するたびに呼ばれ、前回の状態を丸ごと上書きする。
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (catalogdomain.Catalog, error)
	SaveCatalog(ctx context.Context, catalog catalogdomain.Catalog) error
}

// Service は店舗カタログの読み書きユースケース。
type Service interface {
	// Current は表示用のカタログ全体のコピーを返す。
	Current() catalogdomain.Catalog
	// Search はキーワード検索の結果を表示順のまま返す。
	Search(query string) catalogdomain.Catalog
	// FindStore は 1 店舗のコピーを返す。
	FindStore(id string) (catalogdomain.StoreRecord, bool)
	// UpdatePrice は一般価格を差し替え、結果のカタログを永続化して返す。
	// 存在しない店舗 ID は互換性のためエラーにせず無操作として扱う。
	UpdatePrice(ctx context.Context, storeID string, fuel catalogdomain.FuelType, price int) (catalogdomain.Catalog, error)
	// UpdateDiscount は団員値引額を差し替え、結果のカタログを永続化して返す。
	UpdateDiscount(ctx context.Context, storeID string, fuel catalogdomain.FuelType, discount int) (catalogdomain.Catalog, error)
}
