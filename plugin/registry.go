package plugin

import (
	"io"
	"path"
	"reflect"
	"sync"
)

// Registry holds the registered plugins of each category in registration
// order. The zero value is not usable; call NewRegistry.
type Registry struct {
	parsers  []Parser
	decoders []Decoder
	encoders []Encoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry shared by callers that do
// not construct their own.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = NewRegistry() })
	return defaultReg
}

// RegisterParser adds p; a name already present in the category yields a
// *DuplicateNameError.
func (r *Registry) RegisterParser(p Parser) error {
	for _, existing := range r.parsers {
		if existing.Name() == p.Name() {
			return &DuplicateNameError{Name: p.Name(), Category: CategoryParser}
		}
	}
	r.parsers = append(r.parsers, p)
	return nil
}

// RegisterDecoder adds d; duplicate names yield a *DuplicateNameError.
func (r *Registry) RegisterDecoder(d Decoder) error {
	for _, existing := range r.decoders {
		if existing.Name() == d.Name() {
			return &DuplicateNameError{Name: d.Name(), Category: CategoryDecoder}
		}
	}
	r.decoders = append(r.decoders, d)
	return nil
}

// RegisterEncoder adds e; duplicate names yield a *DuplicateNameError.
func (r *Registry) RegisterEncoder(e Encoder) error {
	for _, existing := range r.encoders {
		if existing.Name() == e.Name() {
			return &DuplicateNameError{Name: e.Name(), Category: CategoryEncoder}
		}
	}
	r.encoders = append(r.encoders, e)
	return nil
}

// UnregisterAll clears the named categories, or every category when none
// are given. Unknown categories are ignored.
func (r *Registry) UnregisterAll(categories ...Category) {
	if len(categories) == 0 {
		categories = []Category{CategoryParser, CategoryDecoder, CategoryEncoder}
	}
	for _, c := range categories {
		switch c {
		case CategoryParser:
			r.parsers = nil
		case CategoryDecoder:
			r.decoders = nil
		case CategoryEncoder:
			r.encoders = nil
		}
	}
}

// Parsers returns the registered parsers in registration order.
func (r *Registry) Parsers() []Parser {
	return append([]Parser(nil), r.parsers...)
}

// ResolveParser picks the parser for a file name. The longest matching
// FilePattern wins; among equal-length patterns the earliest registered
// wins. No match yields a *NoParserError.
func (r *Registry) ResolveParser(fileName string) (Parser, error) {
	base := path.Base(fileName)
	var best Parser
	bestLen := -1
	for _, p := range r.parsers {
		pat := p.FilePattern()
		if ok, err := path.Match(pat, base); err != nil || !ok {
			continue
		}
		if len(pat) > bestLen {
			best, bestLen = p, len(pat)
		}
	}
	if best == nil {
		return nil, &NoParserError{File: fileName}
	}
	return best, nil
}

// ParseFile resolves a parser for fileName and runs it over r.
func (r *Registry) ParseFile(fileName string, src io.Reader, opts Options) (any, error) {
	p, err := r.ResolveParser(fileName)
	if err != nil {
		return nil, err
	}
	return p.Parse(src, opts)
}

// ResolveDecoder finds the single decoder whose signature keys are all
// present in m. With allowOtherKeys false the key sets must be equal.
// Zero or multiple candidates resolve to nil: decoding is best-effort
// and never guesses.
func (r *Registry) ResolveDecoder(m map[string]any, allowOtherKeys bool) Decoder {
	var found Decoder
	for _, d := range r.decoders {
		sig := d.DictSignature()
		if !allowOtherKeys && len(sig) != len(m) {
			continue
		}
		all := true
		for _, k := range sig {
			if _, ok := m[k]; !ok {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		if found != nil {
			return nil
		}
		found = d
	}
	return found
}

// Decode revives m through the matching decoder, or returns m untouched
// when no single decoder claims it.
func (r *Registry) Decode(format string, m map[string]any, allowOtherKeys bool) (any, error) {
	d := r.ResolveDecoder(m, allowOtherKeys)
	if d == nil {
		return m, nil
	}
	return d.Decode(format, m)
}

// ResolveEncoder finds the encoder registered for exactly v's dynamic
// type, or nil.
func (r *Registry) ResolveEncoder(v any) Encoder {
	t := reflect.TypeOf(v)
	for _, e := range r.encoders {
		if e.Type() == t {
			return e
		}
	}
	return nil
}

// Encode serialises v through its encoder, or returns v untouched when
// no encoder is registered for its type.
func (r *Registry) Encode(format string, v any) (any, error) {
	e := r.ResolveEncoder(v)
	if e == nil {
		return v, nil
	}
	return e.Encode(format, v)
}
