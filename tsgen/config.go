package tsgen

import (
	"regexp"
	"time"
)

// A Config holds user-defined overrides that are used when generating
// TypeScript declarations from a WSDL definition.
type Config struct {
	logger            Logger
	loglevel          int
	includeOperations bool
	namespaceHint     string
	clock             func() time.Time
	unknownType       string
	strictEnumKeys    bool
	// Transform for type names, applied after title-casing.
	nameTransform func(string) string
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) verbosef(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}
func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// DefaultOptions are the default options for TypeScript generation.
// The top-level Render function of the tsgen package uses these
// options.
var DefaultOptions = []Option{
	UnknownType("unknown"),
	Clock(time.Now),
}

// The Option method is used to configure an existing configuration.
// The return value of the Option method can be used to revert the
// final option to its previous setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Types implementing the Logger interface can receive
// debug information from the code generation process.
// The Logger interface is implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for warnings and debug
// information about the code generation process.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the error log
// configured with the LogOutput option. The level parameter should
// be a positive integer between 1 and 5, with 5 providing the greatest
// verbosity.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// IncludeOperations controls whether an interface is generated for
// each port type, with one method per operation.
func IncludeOperations(include bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.includeOperations
		cfg.includeOperations = include
		return IncludeOperations(prev)
	}
}

// NamespaceHint records the namespace the declarations are intended
// for. It does not currently change the generated text.
func NamespaceHint(ns string) Option {
	return func(cfg *Config) Option {
		prev := cfg.namespaceHint
		cfg.namespaceHint = ns
		return NamespaceHint(prev)
	}
}

// Clock sets the source of the timestamp written in the header of the
// generated file.
func Clock(now func() time.Time) Option {
	return func(cfg *Config) Option {
		prev := cfg.clock
		cfg.clock = now
		return Clock(prev)
	}
}

// UnknownType sets the TypeScript type used wherever the source
// document did not declare a type. Explicit xs:anyType is always
// rendered as any.
func UnknownType(expr string) Option {
	return func(cfg *Config) Option {
		prev := cfg.unknownType
		cfg.unknownType = expr
		return UnknownType(prev)
	}
}

// StrictEnumKeys makes generation fail when two values of an
// enumeration map to the same member name. By default the later
// member is renamed with a numeric suffix and a warning is logged.
func StrictEnumKeys(strict bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.strictEnumKeys
		cfg.strictEnumKeys = strict
		return StrictEnumKeys(prev)
	}
}

// Replace allows for substitution rules for type names to be
// specified. If an invalid regular expression is called, no action is
// taken. The Replace option is additive; subsitutions will be applied
// in the order that each option was applied in.
func Replace(pat, repl string) Option {
	reg, err := regexp.Compile(pat)

	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		return replaceNameTransform(func(name string) string {
			if prev != nil {
				name = prev(name)
			}
			if err != nil {
				cfg.logf("Invalid regex %q passed to Replace", pat)
				return name
			}
			r := reg.ReplaceAllString(name, repl)
			if r != name {
				cfg.debugf("changed name %s -> %s", name, r)
			}
			return r
		})(cfg)
	}
}

func replaceNameTransform(fn func(string) string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		cfg.nameTransform = fn
		return replaceNameTransform(prev)
	}
}
