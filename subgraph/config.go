package subgraph

// MatchLength selects how a needle cell's pin count relates to the
// haystack cell's pin count during compatibility checking.
type MatchLength int

const (
	// Exact requires the needle and haystack cell to have the same pin count.
	Exact MatchLength = iota
	// NeedleSubsetHaystack requires only that the needle pin count be no
	// greater than the haystack's; extra haystack inputs are unconstrained.
	NeedleSubsetHaystack
	// First behaves like NeedleSubsetHaystack but causes the outer anchor
	// loop to stop as soon as one assignment survives dedup.
	First
)

func (m MatchLength) String() string {
	switch m {
	case Exact:
		return "Exact"
	case NeedleSubsetHaystack:
		return "NeedleSubsetHaystack"
	case First:
		return "First"
	default:
		return "Unknown"
	}
}

// Dedupe selects the deduplication policy applied to emitted assignments.
type Dedupe int

const (
	// DedupeNone keeps every emitted assignment.
	DedupeNone Dedupe = iota
	// DedupeAll collapses assignments that are identical up to a needle
	// automorphism, keeping the first emitted per canonical signature.
	DedupeAll
)

func (d Dedupe) String() string {
	switch d {
	case DedupeNone:
		return "None"
	case DedupeAll:
		return "All"
	default:
		return "Unknown"
	}
}

// ModuleOptions is an opaque bag of flags forwarded to the external
// synthesis/design-loading collaborator. The enumerator never inspects its
// contents; it only threads the value through to callers that tag results
// with it.
type ModuleOptions map[string]string

// Config controls the enumerator's matching policy. The zero value is not
// ready to use; build one with NewBuilder().
type Config struct {
	matchLength     MatchLength
	dedupe          Dedupe
	needleOptions   ModuleOptions
	haystackOptions ModuleOptions
}

// MatchLength reports the configured length policy.
func (c *Config) MatchLength() MatchLength { return c.matchLength }

// Dedupe reports the configured deduplication policy.
func (c *Config) Dedupe() Dedupe { return c.dedupe }

// NeedleOptions reports the opaque needle-side module options.
func (c *Config) NeedleOptions() ModuleOptions { return c.needleOptions }

// HaystackOptions reports the opaque haystack-side module options.
func (c *Config) HaystackOptions() ModuleOptions { return c.haystackOptions }

// DefaultConfig returns a Config with the package's default policy:
// MatchLength = NeedleSubsetHaystack, Dedupe = None.
func DefaultConfig() *Config {
	return NewBuilder().Build()
}

// Builder builds a Config incrementally as a fluent builder:
// NewBuilder().MatchLength(...).Dedupe(...).Build().
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with the default Config.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{
		matchLength: NeedleSubsetHaystack,
		dedupe:      DedupeNone,
	}}
}

// MatchLength sets the length policy.
func (b *Builder) MatchLength(m MatchLength) *Builder {
	b.cfg.matchLength = m
	return b
}

// Dedupe sets the deduplication policy.
func (b *Builder) Dedupe(d Dedupe) *Builder {
	b.cfg.dedupe = d
	return b
}

// NeedleOptions sets the opaque needle-side module options.
func (b *Builder) NeedleOptions(o ModuleOptions) *Builder {
	b.cfg.needleOptions = o
	return b
}

// HaystackOptions sets the opaque haystack-side module options.
func (b *Builder) HaystackOptions(o ModuleOptions) *Builder {
	b.cfg.haystackOptions = o
	return b
}

// Build finalizes the Config.
func (b *Builder) Build() *Config {
	cfg := b.cfg
	return &cfg
}
