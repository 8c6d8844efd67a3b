package enums

import "fmt"

// ThreadingOption is a bat threading add-on. ThreadingBoth is priced on its own and
// excludes the individual top and bottom options.
type ThreadingOption string

const (
	ThreadingTop    ThreadingOption = "top"
	ThreadingBottom ThreadingOption = "bottom"
	ThreadingBoth   ThreadingOption = "both"
)

var validThreadingOptions = []ThreadingOption{
	ThreadingTop,
	ThreadingBottom,
	ThreadingBoth,
}

// String implements fmt.Stringer.
func (o ThreadingOption) String() string {
	return string(o)
}

// IsValid reports whether the value is a known ThreadingOption.
func (o ThreadingOption) IsValid() bool {
	for _, candidate := range validThreadingOptions {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseThreadingOption converts raw input into a ThreadingOption.
func ParseThreadingOption(value string) (ThreadingOption, error) {
	for _, candidate := range validThreadingOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid threading option %q", value)
}
