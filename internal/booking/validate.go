package booking

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	pkgerrors "github.com/dasportz/booking-backend/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Violation is one reason a form cannot be submitted. Line is 1-based; zero marks a
// form-level field.
type Violation struct {
	Kind    pkgerrors.Code `json:"kind"`
	Field   string         `json:"field"`
	Line    int            `json:"line,omitempty"`
	Message string         `json:"message"`
}

func (v *Violation) Error() string {
	return v.Message
}

func missing(field, message string) error {
	return &Violation{Kind: pkgerrors.CodeValidation, Field: field, Message: message}
}

// ValidatePhone checks a WhatsApp number is exactly ten digits.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return missing("phone", "WhatsApp number")
	}
	if !phonePattern.MatchString(phone) {
		return &Violation{Kind: pkgerrors.CodeFormat, Field: "phone", Message: "Valid WhatsApp number (Must be exactly 10 digits)"}
	}
	return nil
}

// Validate checks the form is ready to submit. Every violation is collected; the
// returned error carries them all under the code of the first one.
func (f *Form) Validate() error {
	var errs error

	if strings.TrimSpace(f.customer.Store) == "" {
		errs = multierr.Append(errs, missing("store", "Store location"))
	}
	if strings.TrimSpace(f.customer.Name) == "" {
		errs = multierr.Append(errs, missing("name", "Your name"))
	}
	errs = multierr.Append(errs, ValidatePhone(f.customer.Phone))

	if (f.summary.Total > 0 || f.rules.RequirePaymentWhenFree) && f.payment == "" {
		errs = multierr.Append(errs, missing("paymentMethod", "Payment method"))
	}

	for i, line := range f.lines {
		if !line.Touched() {
			continue
		}
		errs = multierr.Append(errs, f.validateLine(i+1, *line))
	}

	if f.summary.SelectedLineCount == 0 {
		errs = multierr.Append(errs, missing("lines", fmt.Sprintf("Please select at least one %s to proceed.", f.selectionNoun())))
	}

	if errs == nil {
		return nil
	}
	return violationsError(multierr.Errors(errs))
}

func (f *Form) selectionNoun() string {
	if f.rules.SelectionNoun == "" {
		return "item"
	}
	return f.rules.SelectionNoun
}

func (f *Form) validateLine(n int, line LineItem) error {
	r := f.rules
	prefix := fmt.Sprintf("%s #%d: ", r.ItemNoun, n)
	lineErr := func(kind pkgerrors.Code, field, msg string) error {
		return &Violation{Kind: kind, Field: field, Line: n, Message: prefix + msg}
	}

	var errs error
	switch {
	case !line.Selection.IsSet():
		errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "selection", f.selectionNoun()+" selection"))
	case !line.Selection.IsValid():
		errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "customName", "custom "+f.selectionNoun()+" name"))
	}

	if r.RequireModel && strings.TrimSpace(line.Details.Model) == "" {
		errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "model", strings.ToLower(r.ItemNoun)+" model name"))
	}
	if line.Details.Model == OtherModel && strings.TrimSpace(line.Details.CustomModel) == "" {
		errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "customModel", "custom model name"))
	}

	if r.TensionMax > 0 {
		switch t := line.Details.Tension; {
		case t == 0:
			errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "tension", "tension"))
		case t < r.TensionMin || t > r.TensionMax:
			errs = multierr.Append(errs, lineErr(pkgerrors.CodeRange, "tension",
				fmt.Sprintf("tension must be between %d and %d lbs (got %d)", r.TensionMin, r.TensionMax, t)))
		}
	}

	if r.RequireRepairNature && strings.TrimSpace(line.Details.RepairNature) == "" {
		errs = multierr.Append(errs, lineErr(pkgerrors.CodeValidation, "repairNature", "nature of repair"))
	}
	return errs
}

func violationsError(list []error) *pkgerrors.Error {
	violations := make([]*Violation, 0, len(list))
	lines := make([]string, 0, len(list))
	for _, err := range list {
		v, ok := err.(*Violation)
		if !ok {
			v = &Violation{Kind: pkgerrors.CodeValidation, Message: err.Error()}
		}
		violations = append(violations, v)
		lines = append(lines, "• "+v.Message)
	}

	message := "Please complete the following:\n" + strings.Join(lines, "\n")
	if len(violations) == 1 && violations[0].Field == "lines" {
		message = violations[0].Message
	}
	return pkgerrors.Wrap(violations[0].Kind, multierr.Combine(list...), message).
		WithDetails(map[string]any{"violations": violations})
}

// Violations extracts the individual violations from a Validate error.
func Violations(err error) []*Violation {
	var out []*Violation
	for _, e := range multierr.Errors(unwrapAll(err)) {
		if v, ok := e.(*Violation); ok {
			out = append(out, v)
		}
	}
	return out
}

func unwrapAll(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		if inner := typed.Unwrap(); inner != nil {
			return inner
		}
	}
	return err
}
