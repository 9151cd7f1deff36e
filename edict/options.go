package edict

// DefaultSep is the separator used to join key-path segments in
// flattened mappings when no Sep option is given.
const DefaultSep = "."

// Logic selects how multiple FilterKeyVals conditions combine.
type Logic int

const (
	LogicAnd Logic = iota
	LogicOr
)

type config struct {
	sep          string
	listOfDicts  bool
	deepCopy     bool
	useWildcards bool
	useRegex     bool
	keepSiblings bool
	overwrite    bool
	appendKeys   bool
	rtol         float64
	atol         float64
}

func newConfig(opts []Option) config {
	c := config{sep: DefaultSep}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Option adjusts the behaviour of an algebra function. Options that do
// not apply to a given function are ignored by it.
type Option func(*config)

// Sep sets the key-path separator used by Flatten, Unflatten and the
// functions built on them.
func Sep(sep string) Option { return func(c *config) { c.sep = sep } }

// ListOfDicts treats sequences of single-key mappings as named siblings
// rather than positional lists.
func ListOfDicts() Option { return func(c *config) { c.listOfDicts = true } }

// DeepCopy makes the output fully independent of the input instead of
// sharing unmodified substructure.
func DeepCopy() Option { return func(c *config) { c.deepCopy = true } }

// Wildcards enables glob-style pattern matching ('*', '?') in FilterKeys.
func Wildcards() Option { return func(c *config) { c.useWildcards = true } }

// Regex enables full regular-expression matching in FilterKeys.
func Regex() Option { return func(c *config) { c.useRegex = true } }

// KeepSiblings retains the sibling subtrees of a matched key, not just
// the matched subtree itself.
func KeepSiblings() Option { return func(c *config) { c.keepSiblings = true } }

// Overwrite resolves merge conflicts by letting the last source win.
func Overwrite() Option { return func(c *config) { c.overwrite = true } }

// AppendKeys resolves merge conflicts by accumulating distinct values
// into a sequence in source order.
func AppendKeys() Option { return func(c *config) { c.appendKeys = true } }

// Tolerance sets the relative and absolute tolerances used by Diff when
// comparing numeric leaves.
func Tolerance(rtol, atol float64) Option {
	return func(c *config) { c.rtol, c.atol = rtol, atol }
}
