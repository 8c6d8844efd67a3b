package booking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dasportz/booking-backend/internal/catalog"
	"github.com/dasportz/booking-backend/pkg/enums"
)

// Selection is what a line picked: nothing, a catalog entry, or "Other" with a
// customer-supplied name.
type Selection struct {
	Entry      *catalog.Entry
	Other      bool
	CustomName string
}

// IsSet reports whether the customer picked anything, even an unnamed Other.
func (s Selection) IsSet() bool {
	return s.Entry != nil || s.Other
}

// IsValid reports whether the selection can be priced and submitted.
func (s Selection) IsValid() bool {
	if s.Entry != nil {
		return true
	}
	return s.Other && strings.TrimSpace(s.CustomName) != ""
}

// Name is the selected entry name or the trimmed custom name.
func (s Selection) Name() string {
	if s.Entry != nil {
		return s.Entry.Name
	}
	if s.Other {
		return strings.TrimSpace(s.CustomName)
	}
	return ""
}

// Options are the threading add-ons on a line.
type Options struct {
	Top    bool
	Bottom bool
	Both   bool
}

// Set toggles one option. Turning on Both clears Top and Bottom; turning on either of
// those clears Both.
func (o *Options) Set(option enums.ThreadingOption, on bool) {
	switch option {
	case enums.ThreadingTop:
		o.Top = on
		if on {
			o.Both = false
		}
	case enums.ThreadingBottom:
		o.Bottom = on
		if on {
			o.Both = false
		}
	case enums.ThreadingBoth:
		o.Both = on
		if on {
			o.Top = false
			o.Bottom = false
		}
	}
}

// Any reports whether any option is on.
func (o Options) Any() bool {
	return o.Top || o.Bottom || o.Both
}

// Surcharge is the per-unit add-on price.
func (o Options) Surcharge(prices ThreadingPrices) int {
	if o.Both {
		return prices.Both
	}
	total := 0
	if o.Top {
		total += prices.Top
	}
	if o.Bottom {
		total += prices.Bottom
	}
	return total
}

// Label names the active threading for order records.
func (o Options) Label() string {
	switch {
	case o.Both:
		return string(enums.ThreadingBoth)
	case o.Top && o.Bottom:
		return "top+bottom"
	case o.Top:
		return string(enums.ThreadingTop)
	case o.Bottom:
		return string(enums.ThreadingBottom)
	}
	return "none"
}

// OtherModel is the model value that requires a custom model name.
const OtherModel = "Other"

// LineDetails are the unpriced fields of a line, apart from Estimate which prices
// estimate-based services.
type LineDetails struct {
	Model        string `json:"model,omitempty"`
	CustomModel  string `json:"customModel,omitempty"`
	Tension      int    `json:"tension,omitempty"`
	ImageName    string `json:"imageName,omitempty"`
	RepairNature string `json:"repairNature,omitempty"`
	Estimate     int    `json:"estimate,omitempty"`
}

// ModelName resolves "Other" to the custom model.
func (d LineDetails) ModelName() string {
	if d.Model == OtherModel {
		return strings.TrimSpace(d.CustomModel)
	}
	return strings.TrimSpace(d.Model)
}

func (d LineDetails) isZero() bool {
	return strings.TrimSpace(d.Model) == "" &&
		strings.TrimSpace(d.CustomModel) == "" &&
		d.Tension == 0 &&
		d.ImageName == "" &&
		strings.TrimSpace(d.RepairNature) == "" &&
		d.Estimate == 0
}

// LineItem is one racket, bat or pair of gloves in the order.
type LineItem struct {
	ID        uuid.UUID
	Selection Selection
	Quantity  int
	Options   Options
	Details   LineDetails
}

func newLine(id uuid.UUID) *LineItem {
	return &LineItem{ID: id, Quantity: 1}
}

// Touched reports whether the customer started filling the line in.
func (l LineItem) Touched() bool {
	return l.Selection.IsSet() || l.Options.Any() || l.Quantity != 1 || !l.Details.isZero()
}

func (l *LineItem) reset() {
	l.Selection = Selection{}
	l.Quantity = 1
	l.Options = Options{}
	l.Details = LineDetails{}
}
