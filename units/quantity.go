package units

import "fmt"

// Quantity is a magnitude tagged with a unit expression. The magnitude
// is usually a float64, but integer and numeric-sequence magnitudes are
// accepted by the conversion engine.
type Quantity struct {
	Magnitude any
	Units     string
}

func (q Quantity) String() string {
	return fmt.Sprintf("%v %s", q.Magnitude, q.Units)
}

// To converts the quantity to another unit expression using eng.
func (q Quantity) To(eng Engine, units string) (Quantity, error) {
	mag, err := eng.Convert(q.Magnitude, q.Units, units)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Magnitude: mag, Units: units}, nil
}
