package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agentic-research/nest/plugin"
)

// KeyPair parses *.keypair files of "key = value" lines into a flat
// mapping with literal-coerced values. Options: "separator" (default
// "="), "comment" (line prefix to skip, default "#").
type KeyPair struct{}

func (p *KeyPair) Name() string        { return "keypair" }
func (p *KeyPair) FilePattern() string { return "*.keypair" }

func (p *KeyPair) Parse(r io.Reader, opts plugin.Options) (any, error) {
	sep := "="
	if s, ok := opts["separator"].(string); ok && s != "" {
		sep = s
	}
	comment := "#"
	if c, ok := opts["comment"].(string); ok {
		comment = c
	}

	out := make(map[string]any)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (comment != "" && strings.HasPrefix(line, comment)) {
			continue
		}
		key, value, found := strings.Cut(line, sep)
		if !found {
			return nil, fmt.Errorf("line %d: no %q separator in %q", lineNo, sep, line)
		}
		out[strings.TrimSpace(key)] = coerceScalar(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
