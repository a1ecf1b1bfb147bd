package mongo

import (
	"fmt"
	"time"

	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

// storeDocument は永続化される店舗 1 件分のスキーマを Go 構造体として表現したもの。
type storeDocument struct {
	ID          string         `bson:"id"`
	Name        string         `bson:"name"`
	Address     string         `bson:"address,omitempty"`
	Tel         string         `bson:"tel,omitempty"`
	Hours       string         `bson:"hours,omitempty"`
	Description string         `bson:"description,omitempty"`
	MapURL      string         `bson:"mapURL,omitempty"`
	Prices      map[string]int `bson:"prices"`
	Discounts   map[string]int `bson:"discounts"`
}

// catalogStateDocument はカタログ全体を 1 ドキュメントに丸ごと保持する。
// スキーマ移行の仕組みは持たず、読み出し時の形状検証で代替する。
type catalogStateDocument struct {
	ID        string          `bson:"_id"`
	Stores    []storeDocument `bson:"stores"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// unlockFlagDocument は管理ボタン解放フラグを保持する。
type unlockFlagDocument struct {
	ID        string    `bson:"_id"`
	Unlocked  bool      `bson:"unlocked"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func mapStoreDocument(doc storeDocument) (catalogdomain.StoreRecord, error) {
	prices, err := mapFuelAmounts(doc.Prices)
	if err != nil {
		return catalogdomain.StoreRecord{}, fmt.Errorf("store %q prices: %w", doc.ID, err)
	}
	discounts, err := mapFuelAmounts(doc.Discounts)
	if err != nil {
		return catalogdomain.StoreRecord{}, fmt.Errorf("store %q discounts: %w", doc.ID, err)
	}
	return catalogdomain.StoreRecord{
		ID:          doc.ID,
		Name:        doc.Name,
		Address:     doc.Address,
		Tel:         doc.Tel,
		Hours:       doc.Hours,
		Description: doc.Description,
		MapURL:      doc.MapURL,
		Prices:      prices,
		Discounts:   discounts,
	}, nil
}

func mapFuelAmounts(values map[string]int) (map[catalogdomain.FuelType]int, error) {
	out := make(map[catalogdomain.FuelType]int, len(values))
	for raw, yen := range values {
		fuel, err := catalogdomain.ParseFuelType(raw)
		if err != nil {
			return nil, err
		}
		out[fuel] = yen
	}
	return out, nil
}

// mapCatalogDocument は永続化データを復元し、信用する前に形状検証を通す。
// 検証に失敗した場合は ErrMalformedState として呼び出し側に種データへの
// フォールバックを促す。
func mapCatalogDocument(doc catalogStateDocument) (catalogdomain.Catalog, error) {
	catalog := make(catalogdomain.Catalog, 0, len(doc.Stores))
	for _, storeDoc := range doc.Stores {
		store, err := mapStoreDocument(storeDoc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", catalogapp.ErrMalformedState, err)
		}
		catalog = append(catalog, store)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", catalogapp.ErrMalformedState, err)
	}
	return catalog, nil
}

func buildCatalogDocument(catalog catalogdomain.Catalog, now time.Time) catalogStateDocument {
	stores := make([]storeDocument, 0, len(catalog))
	for _, store := range catalog {
		stores = append(stores, storeDocument{
			ID:          store.ID,
			Name:        store.Name,
			Address:     store.Address,
			Tel:         store.Tel,
			Hours:       store.Hours,
			Description: store.Description,
			MapURL:      store.MapURL,
			Prices:      buildFuelAmounts(store.Prices),
			Discounts:   buildFuelAmounts(store.Discounts),
		})
	}
	return catalogStateDocument{ID: catalogStateKey, Stores: stores, UpdatedAt: now}
}

func buildFuelAmounts(values map[catalogdomain.FuelType]int) map[string]int {
	out := make(map[string]int, len(values))
	for fuel, yen := range values {
		out[string(fuel)] = yen
	}
	return out
}
