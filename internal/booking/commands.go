package booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dasportz/booking-backend/internal/catalog"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

// Command is one user action on a Form. The set is closed; Form.Dispatch runs it and
// recomputes the summary.
type Command interface {
	apply(f *Form) error
}

// AddLine appends an empty line.
type AddLine struct{}

// RemoveLine removes a line, or resets it in place when it is the only one.
type RemoveLine struct {
	LineID uuid.UUID
}

// RemoveLastLine removes the trailing line with the same single-line rule.
type RemoveLastLine struct{}

// SelectEntry picks a named catalog entry. A blank Brand searches every brand. Name
// "Other" behaves like SelectOther.
type SelectEntry struct {
	LineID uuid.UUID
	Brand  string
	Name   string
}

// SelectOther switches a line to a custom entry.
type SelectOther struct {
	LineID uuid.UUID
}

// SetCustomName sets the custom entry name of an Other line.
type SetCustomName struct {
	LineID uuid.UUID
	Name   string
}

// ClearSelection unselects a line.
type ClearSelection struct {
	LineID uuid.UUID
}

// SetQuantity changes a line's quantity; it must be at least 1.
type SetQuantity struct {
	LineID   uuid.UUID
	Quantity int
}

// ToggleOption switches a threading option.
type ToggleOption struct {
	LineID uuid.UUID
	Option enums.ThreadingOption
	On     bool
}

// SetLineDetails replaces a line's unpriced details.
type SetLineDetails struct {
	LineID  uuid.UUID
	Details LineDetails
}

// ApplyCoupon validates and activates a coupon. A rejected code clears any active one.
type ApplyCoupon struct {
	Code string
}

// CouponInput mirrors typing in the coupon field; an empty value clears the discount.
type CouponInput struct {
	Text string
}

// SetExpress toggles express turnaround.
type SetExpress struct {
	On bool
}

// SetPickupDrop toggles pickup and drop.
type SetPickupDrop struct {
	On bool
}

// SetPaymentMethod picks the payment method. The zero value unsets it.
type SetPaymentMethod struct {
	Method enums.PaymentMethod
}

// SetCustomer replaces the customer fields.
type SetCustomer struct {
	Customer Customer
}

func (AddLine) apply(f *Form) error {
	f.lines = append(f.lines, newLine(f.newID()))
	return nil
}

func (c RemoveLine) apply(f *Form) error {
	idx, err := f.index(c.LineID)
	if err != nil {
		return err
	}
	f.removeAt(idx)
	return nil
}

func (RemoveLastLine) apply(f *Form) error {
	f.removeAt(len(f.lines) - 1)
	return nil
}

func (c SelectEntry) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(c.Name), catalog.OtherName) {
		if !line.Selection.Other {
			line.Selection = Selection{Other: true}
		}
		return nil
	}
	entry, ok := f.rules.Catalog.Lookup(c.Brand, c.Name)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found").WithDetails(map[string]any{
			"brand": c.Brand,
			"name":  c.Name,
		})
	}
	line.Selection = Selection{Entry: &entry}
	return nil
}

func (c SelectOther) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if !line.Selection.Other {
		line.Selection = Selection{Other: true}
	}
	return nil
}

func (c SetCustomName) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if !line.Selection.Other {
		return pkgerrors.New(pkgerrors.CodeValidation, "custom name requires an Other selection")
	}
	line.Selection.CustomName = c.Name
	return nil
}

func (c ClearSelection) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	line.Selection = Selection{}
	return nil
}

func (c SetQuantity) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if c.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeRange, "quantity must be at least 1").WithDetails(map[string]any{
			"quantity": c.Quantity,
		})
	}
	line.Quantity = c.Quantity
	return nil
}

func (c ToggleOption) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if !f.rules.Threading.Enabled() {
		return pkgerrors.New(pkgerrors.CodeValidation, "threading is not offered for this service")
	}
	if !c.Option.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown threading option").WithDetails(map[string]any{
			"option": c.Option,
		})
	}
	line.Options.Set(c.Option, c.On)
	return nil
}

func (c SetLineDetails) apply(f *Form) error {
	line, err := f.line(c.LineID)
	if err != nil {
		return err
	}
	if c.Details.Estimate < 0 || c.Details.Estimate > MaxEstimate {
		return pkgerrors.New(pkgerrors.CodeRange, fmt.Sprintf("estimate must be between 0 and %d", MaxEstimate)).
			WithDetails(map[string]any{"estimate": c.Details.Estimate})
	}
	if c.Details.Model != OtherModel {
		c.Details.CustomModel = ""
	}
	line.Details = c.Details
	return nil
}

func (c ApplyCoupon) apply(f *Form) error {
	result := f.rules.Coupons.Validate(c.Code)
	discount, err := result.Discount()
	f.discount = discount
	f.couponMessage = result.Message
	return err
}

func (c CouponInput) apply(f *Form) error {
	if strings.TrimSpace(c.Text) == "" {
		f.discount = nil
		f.couponMessage = ""
	}
	return nil
}

func (c SetExpress) apply(f *Form) error {
	f.flags.Express = c.On
	return nil
}

func (c SetPickupDrop) apply(f *Form) error {
	f.flags.PickupDrop = c.On
	return nil
}

func (c SetPaymentMethod) apply(f *Form) error {
	if c.Method != "" && !c.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").WithDetails(map[string]any{
			"paymentMethod": c.Method,
		})
	}
	f.payment = c.Method
	return nil
}

func (c SetCustomer) apply(f *Form) error {
	f.customer = c.Customer
	return nil
}
