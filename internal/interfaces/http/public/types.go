package public

import (
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/tips"
)

// fuelPriceResponse は価格ボード 1 段分。団員価格はここで毎回導出する。
type fuelPriceResponse struct {
	Fuel        string `json:"fuel"`
	Label       string `json:"label"`
	Price       int    `json:"price"`
	Discount    int    `json:"discount"`
	MemberPrice int    `json:"memberPrice"`
}

type storeResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Address     string              `json:"address"`
	Tel         string              `json:"tel"`
	Hours       string              `json:"hours"`
	Description string              `json:"description,omitempty"`
	MapURL      string              `json:"mapURL"`
	Prices      []fuelPriceResponse `json:"prices"`
}

type storeListResponse struct {
	Items []storeResponse `json:"items"`
	Total int             `json:"total"`
}

type tipLinkResponse struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type tipResponse struct {
	Text  string            `json:"text"`
	Links []tipLinkResponse `json:"links"`
}

func buildStoreResponse(store catalogdomain.StoreRecord) storeResponse {
	prices := make([]fuelPriceResponse, 0, len(catalogdomain.FuelTypes()))
	for _, fuel := range catalogdomain.FuelTypes() {
		prices = append(prices, fuelPriceResponse{
			Fuel:        string(fuel),
			Label:       fuel.Label(),
			Price:       store.Prices[fuel],
			Discount:    store.Discounts[fuel],
			MemberPrice: catalogdomain.MemberPrice(store, fuel),
		})
	}
	return storeResponse{
		ID:          store.ID,
		Name:        store.Name,
		Address:     store.Address,
		Tel:         store.Tel,
		Hours:       store.Hours,
		Description: store.Description,
		MapURL:      store.MapURL,
		Prices:      prices,
	}
}

func buildStoreListResponse(catalog catalogdomain.Catalog) storeListResponse {
	items := make([]storeResponse, 0, len(catalog))
	for _, store := range catalog {
		items = append(items, buildStoreResponse(store))
	}
	return storeListResponse{Items: items, Total: len(items)}
}

func buildTipResponse(tip tips.Tip) tipResponse {
	links := make([]tipLinkResponse, 0, len(tip.Links))
	for _, link := range tip.Links {
		links = append(links, tipLinkResponse{URI: link.URI, Title: link.Title})
	}
	return tipResponse{Text: tip.Text, Links: links}
}
