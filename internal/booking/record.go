package booking

import (
	"strings"

	"github.com/dasportz/booking-backend/internal/coupons"
	"github.com/dasportz/booking-backend/pkg/enums"
)

// Payment is the price breakdown sent with an order. Discount is null when no coupon
// was applied.
type Payment struct {
	OriginalAmount int               `json:"originalAmount"`
	Discount       *coupons.Discount `json:"discount"`
	FinalAmount    int               `json:"finalAmount"`
}

// OrderLine is one selected line as the order backend reads it. Cost is per unit;
// LineTotal includes quantity.
type OrderLine struct {
	Index          int    `json:"index"`
	Model          string `json:"model,omitempty"`
	BatModel       string `json:"batModel,omitempty"`
	Make           string `json:"make,omitempty"`
	Brand          string `json:"brand,omitempty"`
	StringName     string `json:"stringName,omitempty"`
	Package        string `json:"package,omitempty"`
	PackageLabel   string `json:"packageLabel,omitempty"`
	Price          int    `json:"price"`
	Tension        int    `json:"tension,omitempty"`
	Threading      string `json:"threading,omitempty"`
	NatureOfRepair string `json:"natureOfRepair,omitempty"`
	Image          string `json:"image,omitempty"`
	Qty            int    `json:"qty"`
	Cost           int    `json:"cost"`
	LineTotal      int    `json:"lineTotal"`
}

// OrderRecord is the immutable order handed to a transport.
type OrderRecord struct {
	ServiceType   enums.ServiceType   `json:"serviceType"`
	Store         string              `json:"store"`
	CustomerName  string              `json:"customerName"`
	Phone         string              `json:"phone"`
	ServiceMode   enums.ServiceMode   `json:"serviceMode"`
	ServiceLabel  string              `json:"serviceTime"`
	Express       bool                `json:"express"`
	PickupDrop    bool                `json:"pickupDrop"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod,omitempty"`

	RacketDetails    []OrderLine `json:"racketDetails,omitempty"`
	BatDetails       []OrderLine `json:"batDetails,omitempty"`
	GlovesDetails    *OrderLine  `json:"glovesDetails,omitempty"`
	AdditionalGloves []OrderLine `json:"additionalGloves,omitempty"`

	SelectedCount    int     `json:"selectedCount"`
	ExpressSurcharge int     `json:"expressSurcharge"`
	OnlineDiscount   int     `json:"onlineDiscount"`
	Amount           int     `json:"amount"`
	TestMode         bool    `json:"testMode"`
	Payment          Payment `json:"payment"`
}

// Items returns every detail line regardless of service type.
func (r *OrderRecord) Items() []OrderLine {
	switch {
	case len(r.RacketDetails) > 0:
		return r.RacketDetails
	case len(r.BatDetails) > 0:
		return r.BatDetails
	case r.GlovesDetails != nil:
		return append([]OrderLine{*r.GlovesDetails}, r.AdditionalGloves...)
	}
	return nil
}

// BuildRecord validates the form and builds its order record. Only selected lines are
// included; Index keeps each line's position on the form.
func (f *Form) BuildRecord(testMode bool) (*OrderRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := f.summary
	record := &OrderRecord{
		ServiceType:      f.rules.ServiceType,
		Store:            strings.TrimSpace(f.customer.Store),
		CustomerName:     strings.TrimSpace(f.customer.Name),
		Phone:            strings.TrimSpace(f.customer.Phone),
		ServiceMode:      s.ServiceMode,
		ServiceLabel:     s.ServiceLabel,
		Express:          f.flags.Express,
		PickupDrop:       f.flags.PickupDrop,
		PaymentMethod:    f.payment,
		SelectedCount:    s.SelectedLineCount,
		ExpressSurcharge: s.ExpressSurcharge,
		OnlineDiscount:   s.OnlineDiscount,
		Amount:           s.Total,
		TestMode:         testMode,
		Payment: Payment{
			OriginalAmount: s.BeforeCoupon,
			Discount:       f.Discount(),
			FinalAmount:    s.Total,
		},
	}

	var lines []OrderLine
	for i, line := range f.lines {
		cost := s.Lines[i]
		if !cost.Selected {
			continue
		}
		lines = append(lines, f.orderLine(i+1, *line, cost))
	}

	switch f.rules.ServiceType {
	case enums.ServiceTypeBatKnocking:
		record.BatDetails = lines
	case enums.ServiceTypeGlovesRepairing:
		record.GlovesDetails = &lines[0]
		record.AdditionalGloves = lines[1:]
		if len(record.AdditionalGloves) == 0 {
			record.AdditionalGloves = nil
		}
	default:
		record.RacketDetails = lines
	}
	return record, nil
}

func (f *Form) orderLine(n int, line LineItem, cost LineCost) OrderLine {
	out := OrderLine{
		Index:     n,
		Price:     f.basePrice(line),
		Qty:       cost.Quantity,
		Cost:      cost.UnitPrice,
		LineTotal: cost.Cost,
		Image:     line.Details.ImageName,
	}

	switch f.rules.ServiceType {
	case enums.ServiceTypeBatKnocking:
		out.BatModel = line.Details.ModelName()
		out.Package = line.Selection.Name()
		if line.Selection.Entry != nil {
			out.PackageLabel = line.Selection.Entry.DisplayName()
		}
		out.Threading = line.Options.Label()
	case enums.ServiceTypeGlovesRepairing:
		out.Make = line.Selection.Name()
		out.Model = line.Details.ModelName()
		out.NatureOfRepair = strings.TrimSpace(line.Details.RepairNature)
	default:
		out.Model = line.Details.ModelName()
		out.StringName = line.Selection.Name()
		if line.Selection.Entry != nil {
			out.Brand = line.Selection.Entry.Brand
		}
		out.Tension = line.Details.Tension
	}
	return out
}

// basePrice is the catalog price of the selection alone, zero for Other.
func (f *Form) basePrice(line LineItem) int {
	if f.rules.PricedByEstimate {
		return line.Details.Estimate
	}
	if line.Selection.Entry == nil {
		return 0
	}
	return line.Selection.Entry.BasePrice
}
