package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Engine performs unit conversion arithmetic. Implementations must
// return *IncompatibleUnitError when from and to differ in physical
// dimension and *UnknownUnitError for unit names they do not know.
type Engine interface {
	Convert(value any, from, to string) (any, error)
}

// dims is an exponent vector over the SI base dimensions:
// length, mass, time, current, temperature, amount, luminosity.
type dims [7]int8

func (d dims) add(o dims, sign int8) dims {
	for i := range d {
		d[i] += sign * o[i]
	}
	return d
}

func (d dims) mul(n int8) dims {
	for i := range d {
		d[i] *= n
	}
	return d
}

var (
	dimless = dims{}
	length  = dims{1, 0, 0, 0, 0, 0, 0}
	mass    = dims{0, 1, 0, 0, 0, 0, 0}
	time_   = dims{0, 0, 1, 0, 0, 0, 0}
	current = dims{0, 0, 0, 1, 0, 0, 0}
	temp    = dims{0, 0, 0, 0, 1, 0, 0}
	amount  = dims{0, 0, 0, 0, 0, 1, 0}
	energy  = dims{2, 1, -2, 0, 0, 0, 0}
	force   = dims{1, 1, -2, 0, 0, 0, 0}
	press   = dims{-1, 1, -2, 0, 0, 0, 0}
)

type unitDef struct {
	factor float64 // multiple of the SI coherent unit
	dim    dims
}

// engine is the builtin dimensional registry. Unit expressions are
// products and quotients of named units with integer powers, e.g.
// "angstrom^3", "kg m/s^2", "eV / angstrom".
type engine struct {
	units map[string]unitDef
}

// NewEngine returns the builtin dimensional engine.
func NewEngine() Engine {
	e := &engine{units: make(map[string]unitDef)}
	def := func(d unitDef, names ...string) {
		for _, n := range names {
			e.units[n] = d
		}
	}
	def(unitDef{1, dimless}, "", "dimensionless")
	// length
	def(unitDef{1, length}, "m", "meter", "metre")
	def(unitDef{1e3, length}, "km")
	def(unitDef{1e-2, length}, "cm")
	def(unitDef{1e-3, length}, "mm")
	def(unitDef{1e-6, length}, "um", "micron")
	def(unitDef{1e-9, length}, "nm")
	def(unitDef{1e-10, length}, "angstrom", "ang")
	def(unitDef{1e-12, length}, "pm")
	def(unitDef{5.29177210903e-11, length}, "bohr")
	// mass
	def(unitDef{1, mass}, "kg")
	def(unitDef{1e-3, mass}, "g", "gram")
	def(unitDef{1e-6, mass}, "mg")
	// time
	def(unitDef{1, time_}, "s", "sec", "second")
	def(unitDef{1e-3, time_}, "ms")
	def(unitDef{1e-6, time_}, "us")
	def(unitDef{1e-9, time_}, "ns")
	def(unitDef{1e-12, time_}, "ps")
	def(unitDef{1e-15, time_}, "fs")
	def(unitDef{60, time_}, "min", "minute")
	def(unitDef{3600, time_}, "hour", "hr")
	def(unitDef{86400, time_}, "day")
	// current, temperature, amount
	def(unitDef{1, current}, "A", "ampere")
	def(unitDef{1, temp}, "K", "kelvin")
	def(unitDef{1, amount}, "mol", "mole")
	// energy
	def(unitDef{1, energy}, "J", "joule")
	def(unitDef{1e3, energy}, "kJ")
	def(unitDef{1e-3, energy}, "mJ")
	def(unitDef{1.602176634e-19, energy}, "eV")
	def(unitDef{4.3597447222071e-18, energy}, "hartree")
	// force, pressure
	def(unitDef{1, force}, "N", "newton")
	def(unitDef{1, press}, "Pa", "pascal")
	def(unitDef{1e5, press}, "bar")
	def(unitDef{1e9, press}, "GPa")
	return e
}

func (e *engine) Convert(value any, from, to string) (any, error) {
	fFactor, fDim, err := e.parse(from)
	if err != nil {
		return nil, err
	}
	tFactor, tDim, err := e.parse(to)
	if err != nil {
		return nil, err
	}
	if fDim != tDim {
		return nil, &IncompatibleUnitError{From: from, To: to}
	}
	return scale(value, fFactor/tFactor)
}

func scale(value any, factor float64) (any, error) {
	switch t := value.(type) {
	case float64:
		return t * factor, nil
	case float32:
		return float64(t) * factor, nil
	case int:
		return float64(t) * factor, nil
	case int64:
		return float64(t) * factor, nil
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			v, err := scale(el, factor)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case []float64:
		out := make([]float64, len(t))
		for i, el := range t {
			out[i] = el * factor
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot scale magnitude of type %T", value)
	}
}

// parse evaluates a unit expression into a single SI factor and
// dimension vector. A '/' divides everything after it; terms are
// whitespace- or '*'-separated names with optional integer powers
// written as name^n or name**n.
func (e *engine) parse(expr string) (float64, dims, error) {
	factor := 1.0
	var dim dims
	sign := int8(1)
	for i, side := range strings.SplitN(expr, "/", 2) {
		if i == 1 {
			sign = -1
		}
		side = strings.ReplaceAll(side, "**", "^")
		side = strings.ReplaceAll(side, "*", " ")
		for _, term := range strings.Fields(side) {
			name, pow, err := splitPower(term)
			if err != nil {
				return 0, dims{}, err
			}
			def, ok := e.units[name]
			if !ok {
				return 0, dims{}, &UnknownUnitError{Unit: name}
			}
			factor *= math.Pow(def.factor, float64(sign)*float64(pow))
			dim = dim.add(def.dim.mul(pow), sign)
		}
	}
	return factor, dim, nil
}

func splitPower(term string) (string, int8, error) {
	name := term
	pow := 1
	if idx := strings.Index(term, "^"); idx >= 0 {
		name = term[:idx]
		p, err := strconv.Atoi(strings.TrimLeft(term[idx:], "^"))
		if err != nil {
			return "", 0, fmt.Errorf("bad unit power in %q", term)
		}
		pow = p
	}
	return name, int8(pow), nil
}
