package bookingdto

import (
	"github.com/dasportz/booking-backend/internal/booking"
	"github.com/dasportz/booking-backend/internal/catalog"
	"github.com/dasportz/booking-backend/internal/coupons"
	"github.com/dasportz/booking-backend/pkg/money"
)

// QuoteResponse is a priced form. Coupon is set when a code was supplied.
type QuoteResponse struct {
	ServiceType    string          `json:"serviceType"`
	Summary        booking.Summary `json:"summary"`
	TotalFormatted string          `json:"totalFormatted"`
	Coupon         *coupons.Result `json:"coupon,omitempty"`
}

// CatalogEntry is an entry with its labour-inclusive price.
type CatalogEntry struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	BasePrice      int    `json:"basePrice"`
	Price          int    `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
}

// CatalogBrand groups entries by brand.
type CatalogBrand struct {
	Brand   string         `json:"brand"`
	Entries []CatalogEntry `json:"entries"`
}

// CatalogResponse lists a service's selectable entries.
type CatalogResponse struct {
	ServiceType string         `json:"serviceType"`
	Labour      int            `json:"labour"`
	OtherName   string         `json:"otherName"`
	Brands      []CatalogBrand `json:"brands"`
}

// NewCatalogResponse maps a catalog for the storefront.
func NewCatalogResponse(service string, c *catalog.Catalog) CatalogResponse {
	resp := CatalogResponse{
		ServiceType: service,
		Labour:      c.Labour(),
		OtherName:   catalog.OtherName,
	}
	for _, brand := range c.Brands() {
		group := CatalogBrand{Brand: brand}
		for _, entry := range c.Entries(brand) {
			price := c.Price(entry)
			group.Entries = append(group.Entries, CatalogEntry{
				Name:           entry.Name,
				Label:          entry.DisplayName(),
				BasePrice:      entry.BasePrice,
				Price:          price,
				PriceFormatted: money.Format(price),
			})
		}
		resp.Brands = append(resp.Brands, group)
	}
	return resp
}
