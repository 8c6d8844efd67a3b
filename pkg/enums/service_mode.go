package enums

// ServiceMode is the turnaround promised for an order.
type ServiceMode string

const (
	ServiceModeNormal  ServiceMode = "normal"
	ServiceModeExpress ServiceMode = "express"
)

// String implements fmt.Stringer.
func (m ServiceMode) String() string {
	return string(m)
}

// Label returns the customer-facing turnaround text shown in the order summary.
func (m ServiceMode) Label() string {
	if m == ServiceModeExpress {
		return "Express (within 1 hour)"
	}
	return "Normal (within 4 hours)"
}
