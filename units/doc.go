// Package units attaches physical units to nested-structure leaves.
//
// A Quantity pairs a magnitude with a unit expression string such as
// "angstrom^3" or "kg m/s^2". Conversion arithmetic lives behind the
// Engine interface; NewEngine returns a dimensional engine covering the
// common SI and lab units. ApplyUnitSchema wraps or converts the leaves
// of a nested structure according to a key-path-addressed schema, and
// SplitQuantities/CombineQuantities translate between Quantity leaves
// and {"magnitude", "units"} sibling pairs.
package units
