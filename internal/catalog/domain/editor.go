package domain

import "strings"

// SetPrice は対象店舗の指定油種の一般価格だけを差し替えた新しいカタログを返す。
// 入力カタログは変更せず、対象外の店舗・項目はそのまま引き継ぐ。
// 一致する ID が存在しない場合は入力と構造的に等しいコピーを返す(無操作)。
// 値の妥当性検証はこの層では行わない。
func SetPrice(catalog Catalog, storeID string, fuel FuelType, price int) Catalog {
	out := catalog.Clone()
	for i := range out {
		if out[i].ID == storeID {
			if out[i].Prices == nil {
				out[i].Prices = make(map[FuelType]int)
			}
			out[i].Prices[fuel] = price
		}
	}
	return out
}

// SetDiscount は対象店舗の指定油種の団員値引額だけを差し替えた新しいカタログを返す。
// 契約は SetPrice と同じ。
func SetDiscount(catalog Catalog, storeID string, fuel FuelType, discount int) Catalog {
	out := catalog.Clone()
	for i := range out {
		if out[i].ID == storeID {
			if out[i].Discounts == nil {
				out[i].Discounts = make(map[FuelType]int)
			}
			out[i].Discounts[fuel] = discount
		}
	}
	return out
}

// Filter はキーワードに一致する店舗だけを元の並び順のまま返す。
// クエリは前後空白を除去して小文字化し、空なら入力カタログをそのまま返す。
// 店名・住所・目印(あれば)のいずれかに部分一致すれば採用。副作用はない。
func Filter(catalog Catalog, query string) Catalog {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return catalog
	}
	out := make(Catalog, 0, len(catalog))
	for _, store := range catalog {
		if strings.Contains(strings.ToLower(store.Name), needle) ||
			strings.Contains(strings.ToLower(store.Address), needle) ||
			(store.Description != "" && strings.Contains(strings.ToLower(store.Description), needle)) {
			out = append(out, store)
		}
	}
	return out
}
