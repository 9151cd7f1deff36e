package units

import "fmt"

// UnknownUnitError reports a unit name absent from the engine registry.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Unit)
}

// IncompatibleUnitError reports a conversion between unit expressions of
// different physical dimension.
type IncompatibleUnitError struct {
	From string
	To   string
}

func (e *IncompatibleUnitError) Error() string {
	return fmt.Sprintf("cannot convert %q to %q: incompatible dimensions", e.From, e.To)
}
