package domain

import "fmt"

// FuelType は取り扱い油種を表す閉じた列挙。
// 新しい油種を追加する場合は FuelTypes と Label も必ず拡張すること。
type FuelType string

const (
	FuelRegular FuelType = "regular"
	FuelDiesel  FuelType = "diesel"
)

// FuelTypes は価格ボードの表示順を保った全油種を返す。
func FuelTypes() []FuelType {
	return []FuelType{FuelRegular, FuelDiesel}
}

// ParseFuelType は外部入力から油種を解決する。未知の値はエラー。
func ParseFuelType(value string) (FuelType, error) {
	switch FuelType(value) {
	case FuelRegular:
		return FuelRegular, nil
	case FuelDiesel:
		return FuelDiesel, nil
	}
	return "", fmt.Errorf("unknown fuel type: %q", value)
}

// Label は価格ボードに表示する日本語ラベルを返す。
func (f FuelType) Label() string {
	switch f {
	case FuelRegular:
		return "レギュラー"
	case FuelDiesel:
		return "軽油"
	}
	return string(f)
}

// StoreRecord は 1 店舗分の情報を保持する。
// ID はカタログ編集時の結合キーとして使われ、登録後に変わることはない。
// Prices / Discounts は油種ごとの税込価格(円)と団員値引額(円)。
type StoreRecord struct {
	ID          string
	Name        string
	Address     string
	Tel         string
	Hours       string
	Description string
	MapURL      string
	Prices      map[FuelType]int
	Discounts   map[FuelType]int
}

// Clone は価格・値引マップも含めた深いコピーを返す。
func (s StoreRecord) Clone() StoreRecord {
	out := s
	out.Prices = clonePriceMap(s.Prices)
	out.Discounts = clonePriceMap(s.Discounts)
	return out
}

func clonePriceMap(src map[FuelType]int) map[FuelType]int {
	if src == nil {
		return nil
	}
	dst := make(map[FuelType]int, len(src))
	for fuel, yen := range src {
		dst[fuel] = yen
	}
	return dst
}

// MemberPrice は消防団員価格(一般価格 - 値引額)を返す。表示用の導出値であり保存しない。
func MemberPrice(store StoreRecord, fuel FuelType) int {
	return store.Prices[fuel] - store.Discounts[fuel]
}

// Catalog は表示順を保持した店舗列。ID は列全体で一意。
// 店舗の削除操作は存在せず、編集は常にコピーを返す純粋関数で行う。
type Catalog []StoreRecord

// Clone はカタログ全体の深いコピーを返す。
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for i, store := range c {
		out[i] = store.Clone()
	}
	return out
}

// FindByID は一致する店舗のコピーを返す。
func (c Catalog) FindByID(id string) (StoreRecord, bool) {
	for _, store := range c {
		if store.ID == id {
			return store.Clone(), true
		}
	}
	return StoreRecord{}, false
}

// Validate は永続化データを信用する前の形状検証。
// ID の一意性、必須項目、価格・値引マップのキー集合が油種の定義域と
// 一致すること、金額が非負であることを確認する。
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, store := range c {
		if store.ID == "" {
			return fmt.Errorf("store[%d]: id is required", i)
		}
		if _, ok := seen[store.ID]; ok {
			return fmt.Errorf("store[%d]: duplicate id %q", i, store.ID)
		}
		seen[store.ID] = struct{}{}
		if store.Name == "" {
			return fmt.Errorf("store %q: name is required", store.ID)
		}
		if err := validatePriceMap(store.ID, "prices", store.Prices); err != nil {
			return err
		}
		if err := validatePriceMap(store.ID, "discounts", store.Discounts); err != nil {
			return err
		}
	}
	return nil
}

func validatePriceMap(storeID, field string, values map[FuelType]int) error {
	if len(values) != len(FuelTypes()) {
		return fmt.Errorf("store %q: %s must cover every fuel type", storeID, field)
	}
	for _, fuel := range FuelTypes() {
		yen, ok := values[fuel]
		if !ok {
			return fmt.Errorf("store %q: %s is missing %s", storeID, field, fuel)
		}
		if yen < 0 {
			return fmt.Errorf("store %q: %s[%s] must not be negative", storeID, field, fuel)
		}
	}
	return nil
}
