// Package codecs provides the builtin encoder/decoder plugin pairs.
// Each pair round-trips one Go type through a single-key signature
// mapping so it survives JSON serialization:
//
//	units.Quantity <-> {"_quantity_": {"magnitude": m, "units": u}}
//	*big.Rat       <-> {"_rational_": [numerator, denominator]}
//	time.Time      <-> {"_datetime_": "RFC3339Nano"}
//
// Encoders additionally support the "str" format for human-readable
// rendering.
package codecs

import "github.com/agentic-research/nest/plugin"

// RegisterAll registers every builtin codec on r.
func RegisterAll(r *plugin.Registry) error {
	encoders := []plugin.Encoder{
		&QuantityCodec{},
		&RationalCodec{},
		&TimeCodec{},
	}
	for _, e := range encoders {
		if err := r.RegisterEncoder(e); err != nil {
			return err
		}
	}
	decoders := []plugin.Decoder{
		&QuantityCodec{},
		&RationalCodec{},
		&TimeCodec{},
	}
	for _, d := range decoders {
		if err := r.RegisterDecoder(d); err != nil {
			return err
		}
	}
	return nil
}
