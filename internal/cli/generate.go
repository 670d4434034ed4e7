package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CognitoIQ/wsdl2ts/gogen"
	"github.com/CognitoIQ/wsdl2ts/internal/commandline"
	"github.com/CognitoIQ/wsdl2ts/internal/fetch"
	"github.com/CognitoIQ/wsdl2ts/tsgen"
	"github.com/CognitoIQ/wsdl2ts/wsdl"
)

const (
	defaultOutput = "./types.ts"
	targetTS      = "ts"
	targetGo      = "go"
)

type generateOptions struct {
	Output            string
	Namespace         string
	IncludeOperations bool
	Target            string
	Package           string
	Replace           commandline.ReplaceRuleList
	StrictEnums       bool
	UnknownType       string
	Timeout           time.Duration
}

// resolveOptions merges flags with the config file and environment.
// Flags set on the command line take precedence.
func resolveOptions(cmd *cobra.Command, opts generateOptions) (generateOptions, error) {
	resolved := generateOptions{
		Output:            resolveString(cmd, opts.Output, "output", "output"),
		Namespace:         resolveString(cmd, opts.Namespace, "namespace", "namespace"),
		IncludeOperations: resolveBool(cmd, opts.IncludeOperations, "include_operations", "include-operations"),
		Target:            resolveString(cmd, opts.Target, "target", "target"),
		Package:           resolveString(cmd, opts.Package, "package", "package"),
		Replace:           opts.Replace,
		StrictEnums:       resolveBool(cmd, opts.StrictEnums, "strict_enums", "strict-enums"),
		UnknownType:       resolveString(cmd, opts.UnknownType, "unknown_type", "unknown-type"),
		Timeout:           resolveDuration(cmd, opts.Timeout, "timeout", "timeout"),
	}
	if !flagChanged(cmd, "replace") {
		for _, s := range viper.GetStringSlice("replace") {
			if err := resolved.Replace.Set(s); err != nil {
				return resolved, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("invalid replace rule in config").
					WithCause(err)
			}
		}
	}
	switch resolved.Target {
	case "", targetTS:
		resolved.Target = targetTS
	case targetGo:
		if resolved.Output == defaultOutput {
			resolved.Output = "./types.go"
		}
	default:
		return resolved, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown target %q, must be %q or %q", resolved.Target, targetTS, targetGo))
	}
	if resolved.Output == "" {
		resolved.Output = defaultOutput
	}
	return resolved, nil
}

func runGenerate(ctx context.Context, cmd *cobra.Command, source string, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := resolveOptions(cmd, opts)
	if err != nil {
		return err
	}
	log.Info().Str("source", source).Str("output", opts.Output).Str("target", opts.Target).Msg("starting generation")

	loader := fetch.Loader{Timeout: opts.Timeout}
	data, err := loader.Load(ctx, source)
	if err != nil {
		return err
	}

	logger, level := libraryLogging("wsdl")
	def, err := wsdl.Parse(data, wsdl.LogOutput(logger), wsdl.LogLevel(level))
	if err != nil {
		var schemaErr *wsdl.SchemaError
		if errors.As(err, &schemaErr) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(schemaErr.Msg)
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse WSDL %s", source)).
			WithCause(err)
	}
	log.Info().
		Int("complex_types", len(def.ComplexTypes)).
		Int("simple_types", len(def.SimpleTypes)).
		Int("messages", len(def.Messages)).
		Int("elements", len(def.Elements)).
		Int("port_types", len(def.PortTypes)).
		Msg("parsed WSDL")

	out, err := render(def, opts)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to generate types").
			WithCause(err)
	}
	if err := writeOutput(opts.Output, out); err != nil {
		return err
	}
	log.Info().Str("output", opts.Output).Msg("types written")
	return nil
}

func render(def *wsdl.Definition, opts generateOptions) ([]byte, error) {
	if opts.Target == targetGo {
		logger, level := libraryLogging("gogen")
		gopts := []gogen.Option{
			gogen.LogOutput(logger),
			gogen.LogLevel(level),
			gogen.IncludeOperations(opts.IncludeOperations),
			gogen.NamespaceHint(opts.Namespace),
			gogen.PackageName(opts.Package),
		}
		for _, rule := range opts.Replace {
			gopts = append(gopts, gogen.Replace(rule.From.String(), rule.To))
		}
		return gogen.Generate(def, gopts...)
	}

	logger, level := libraryLogging("tsgen")
	topts := []tsgen.Option{
		tsgen.LogOutput(logger),
		tsgen.LogLevel(level),
		tsgen.IncludeOperations(opts.IncludeOperations),
		tsgen.NamespaceHint(opts.Namespace),
		tsgen.StrictEnumKeys(opts.StrictEnums),
	}
	if opts.UnknownType != "" {
		topts = append(topts, tsgen.UnknownType(opts.UnknownType))
	}
	for _, rule := range opts.Replace {
		topts = append(topts, tsgen.Replace(rule.From.String(), rule.To))
	}
	text, err := tsgen.Render(def, topts...)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to create output directory for %s", path)).
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}
