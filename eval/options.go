package eval

import (
	"log/slog"
	"time"

	"github.com/simon-lentz/weft/immutable"
)

// Option configures an Evaluator.
type Option func(*config)

// config holds evaluator configuration assembled from Options.
type config struct {
	logger   *slog.Logger
	now      func() time.Time
	resolver Resolver
	codecs   CodecProvider
}

// Resolver resolves a readUrl(url) call to its raw bytes, per §4.5:
// classpath:// resources come from an embedded/registered source; any
// other URL is a best-effort HTTP GET. The evaluator itself stays
// transport-agnostic — it only depends on this seam.
type Resolver interface {
	// Resolve returns the raw body for url, or an error. The caller
	// (builtins_codec.go's builtinReadURL) replaces any error for a
	// classpath:// URL with the literal body "null"; errors for other
	// URLs are returned unchanged.
	Resolve(url string) ([]byte, error)
}

// CodecProvider is the seam ds.read/ds.write/readUrl use to reach the
// format boundary (§4.5) without this package importing package codec:
// eval only needs the two-method shape below, never codec's reader/
// writer plugin machinery, so naming the dependency as a local
// interface keeps eval usable standalone. The concrete *codec.Registry
// satisfies this interface structurally — it never imports eval either.
type CodecProvider interface {
	// ReadValue decodes data (interpreted per mediaType/params) into an
	// immutable.Value.
	ReadValue(data []byte, mediaType string, params map[string]string) (immutable.Value, error)
	// WriteValue encodes v per mediaType/params, returning the bytes.
	WriteValue(v immutable.Value, mediaType string, params map[string]string) ([]byte, error)
}

// WithLogger sets the logger used for operation-boundary tracing during
// evaluation. If unset, no logging is performed.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock stores a time source in the evaluator configuration (the
// default is time.Now). No builtin reads it: datetime.now always uses
// the system clock.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithResolver sets the Resolver used by readUrl.
func WithResolver(r Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithCodecs sets the CodecProvider backing ds.read/ds.write/readUrl's
// JSON-parse step. If unset, those builtins raise CodecNotFound.
func WithCodecs(c CodecProvider) Option {
	return func(cfg *config) { cfg.codecs = c }
}

func applyOptions(opts []Option) *config {
	cfg := &config{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
