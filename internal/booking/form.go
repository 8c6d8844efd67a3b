package booking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dasportz/booking-backend/internal/coupons"
	"github.com/dasportz/booking-backend/pkg/enums"
	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

// Customer is who the order is for and where it is handed in.
type Customer struct {
	Store string `json:"store"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Option configures a Form.
type Option func(*Form)

// WithIDGenerator overrides how line IDs are minted.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(f *Form) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// Form is one open booking session. It always holds at least one line and keeps its
// summary current after every command. A Form is not safe for concurrent use.
type Form struct {
	rules         Rules
	newID         func() uuid.UUID
	lines         []*LineItem
	customer      Customer
	flags         Flags
	payment       enums.PaymentMethod
	discount      *coupons.Discount
	couponMessage string
	summary       Summary
}

// NewForm opens a form with a single empty line.
func NewForm(rules Rules, opts ...Option) *Form {
	f := &Form{rules: rules, newID: uuid.New, payment: rules.DefaultPayment}
	for _, opt := range opts {
		opt(f)
	}
	f.Reset()
	return f
}

// Dispatch applies a command and recomputes. The summary is returned even when the
// command fails; a rejected coupon still clears the previous discount.
func (f *Form) Dispatch(cmd Command) (Summary, error) {
	if cmd == nil {
		return f.summary, pkgerrors.New(pkgerrors.CodeValidation, "command is required")
	}
	err := cmd.apply(f)
	f.recompute()
	return f.summary, err
}

// Reset clears the lines back to a single empty one and drops the coupon. Customer
// fields, service flags and the payment method are kept.
func (f *Form) Reset() {
	f.lines = []*LineItem{newLine(f.newID())}
	f.discount = nil
	f.couponMessage = ""
	f.recompute()
}

func (f *Form) Rules() Rules                 { return f.rules }
func (f *Form) Summary() Summary             { return f.summary }
func (f *Form) Customer() Customer           { return f.customer }
func (f *Form) Flags() Flags                 { return f.flags }
func (f *Form) Payment() enums.PaymentMethod { return f.payment }
func (f *Form) CouponMessage() string        { return f.couponMessage }

// Discount returns a copy of the active coupon, nil when none is applied.
func (f *Form) Discount() *coupons.Discount {
	if f.discount == nil {
		return nil
	}
	d := *f.discount
	return &d
}

// Lines returns copies of the lines in order.
func (f *Form) Lines() []LineItem {
	out := make([]LineItem, len(f.lines))
	for i, line := range f.lines {
		out[i] = *line
	}
	return out
}

// Quote snapshots the priced inputs of the form.
func (f *Form) Quote() Quote {
	return Quote{
		Lines:    f.Lines(),
		Flags:    f.flags,
		Payment:  f.payment,
		Discount: f.Discount(),
	}
}

func (f *Form) recompute() {
	f.summary = Compute(f.rules, f.Quote())
}

func (f *Form) index(id uuid.UUID) (int, error) {
	for i, line := range f.lines {
		if line.ID == id {
			return i, nil
		}
	}
	return -1, pkgerrors.New(pkgerrors.CodeNotFound, "line not found").WithDetails(map[string]any{
		"lineId": id.String(),
	})
}

func (f *Form) line(id uuid.UUID) (*LineItem, error) {
	idx, err := f.index(id)
	if err != nil {
		return nil, err
	}
	return f.lines[idx], nil
}

func (f *Form) removeAt(idx int) {
	if len(f.lines) == 1 {
		f.lines[0].reset()
		return
	}
	f.lines = append(f.lines[:idx], f.lines[idx+1:]...)
}

// DraftLine is a line as submitted by a client in one piece.
type DraftLine struct {
	Brand      string                  `json:"brand"`
	Name       string                  `json:"name"`
	CustomName string                  `json:"customName"`
	Quantity   int                     `json:"quantity"`
	Threading  []enums.ThreadingOption `json:"threading"`
	Details    LineDetails             `json:"details"`
}

// Draft is a whole form as submitted by a client in one piece.
type Draft struct {
	Customer      Customer            `json:"customer"`
	Lines         []DraftLine         `json:"lines"`
	Flags         Flags               `json:"flags"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Coupon        string              `json:"coupon"`
}

// FromDraft builds a form by replaying a draft as commands. A blank payment method
// keeps the service default. A rejected coupon is
// returned as an error alongside the form, which is still priced without it.
func FromDraft(rules Rules, draft Draft, opts ...Option) (*Form, error) {
	f := NewForm(rules, opts...)
	cmds := []Command{
		SetCustomer{Customer: draft.Customer},
		SetExpress{On: draft.Flags.Express},
		SetPickupDrop{On: draft.Flags.PickupDrop},
	}
	if draft.PaymentMethod != "" {
		cmds = append(cmds, SetPaymentMethod{Method: draft.PaymentMethod})
	}
	for _, cmd := range cmds {
		if _, err := f.Dispatch(cmd); err != nil {
			return nil, err
		}
	}

	for i, dl := range draft.Lines {
		if i > 0 {
			if _, err := f.Dispatch(AddLine{}); err != nil {
				return nil, err
			}
		}
		if err := f.loadLine(f.lines[len(f.lines)-1].ID, dl); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(draft.Coupon) != "" {
		if _, err := f.Dispatch(ApplyCoupon{Code: draft.Coupon}); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f *Form) loadLine(id uuid.UUID, dl DraftLine) error {
	var cmds []Command
	if strings.TrimSpace(dl.Name) != "" {
		cmds = append(cmds, SelectEntry{LineID: id, Brand: dl.Brand, Name: dl.Name})
		if dl.CustomName != "" {
			cmds = append(cmds, SetCustomName{LineID: id, Name: dl.CustomName})
		}
	}
	if dl.Quantity != 0 {
		cmds = append(cmds, SetQuantity{LineID: id, Quantity: dl.Quantity})
	}
	for _, opt := range dl.Threading {
		cmds = append(cmds, ToggleOption{LineID: id, Option: opt, On: true})
	}
	cmds = append(cmds, SetLineDetails{LineID: id, Details: dl.Details})

	for _, cmd := range cmds {
		if _, err := f.Dispatch(cmd); err != nil {
			return err
		}
	}
	return nil
}
