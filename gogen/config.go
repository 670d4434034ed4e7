package gogen

import (
	"regexp"
	"time"
)

// A Config holds user-defined overrides that are used when generating
// Go source code from a WSDL definition.
type Config struct {
	logger            Logger
	loglevel          int
	pkgname           string
	namespaceHint     string
	includeOperations bool
	clock             func() time.Time
	nameTransform     func(string) string
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

// DefaultOptions are the default options for Go source code
// generation. The top-level Generate function uses these options.
var DefaultOptions = []Option{
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
// configured with the LogOutput option.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// PackageName specifies the name of the generated Go package. If
// unset, the package is named after the namespace hint, or "ws" if
// there is none.
func PackageName(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.pkgname
		cfg.pkgname = name
		return PackageName(prev)
	}
}

// NamespaceHint names the namespace the declarations belong to. It is
// used to derive a package name when PackageName is not set.
func NamespaceHint(ns string) Option {
	return func(cfg *Config) Option {
		prev := cfg.namespaceHint
		cfg.namespaceHint = ns
		return NamespaceHint(prev)
	}
}

// IncludeOperations controls whether an interface is generated for
// each port type.
func IncludeOperations(include bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.includeOperations
		cfg.includeOperations = include
		return IncludeOperations(prev)
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

// Replace allows for substitution rules for type names to be
// specified. If an invalid regular expression is called, no action is
// taken. Substitutions are applied in the order that each option was
// applied in.
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
