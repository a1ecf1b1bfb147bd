package admin

import (
	adminapp "github.com/yoshino-ss/yoshino-site-services/api/internal/admin/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
)

type sessionResponse struct {
	State       string `json:"state"`
	PromptOpen  bool   `json:"promptOpen"`
	ErrorActive bool   `json:"errorActive"`
}

func buildSessionResponse(snap adminapp.SessionSnapshot) sessionResponse {
	return sessionResponse{
		State:       string(snap.State),
		PromptOpen:  snap.PromptOpen,
		ErrorActive: snap.ErrorActive,
	}
}

type confirmRequest struct {
	Password string `json:"password"`
}

type confirmResponse struct {
	Session   sessionResponse `json:"session"`
	EditToken string          `json:"editToken,omitempty"`
}

type priceUpdateRequest struct {
	Price *int `json:"price"`
}

type discountUpdateRequest struct {
	Discount *int `json:"discount"`
}

type fuelPriceResponse struct {
	Fuel        string `json:"fuel"`
	Label       string `json:"label"`
	Price       int    `json:"price"`
	Discount    int    `json:"discount"`
	MemberPrice int    `json:"memberPrice"`
}

type storeResponse struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Prices []fuelPriceResponse `json:"prices"`
}

type catalogResponse struct {
	Items []storeResponse `json:"items"`
}

func buildCatalogResponse(catalog catalogdomain.Catalog) catalogResponse {
	items := make([]storeResponse, 0, len(catalog))
	for _, store := range catalog {
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
		items = append(items, storeResponse{ID: store.ID, Name: store.Name, Prices: prices})
	}
	return catalogResponse{Items: items}
}
