// Package cli implements the wsdl2ts command.
package cli

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CognitoIQ/wsdl2ts/internal/fetch"
)

// version is set at build time via ldflags.
var version = "1.0.0"

const envPrefix = "WSDL2TS"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:           "wsdl2ts <wsdl>",
		Short:         "Generate TypeScript types from WSDL files",
		Long:          "Generate type declarations from a WSDL file path or http(s) URL.",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", defaultOutput, "Output file path")
	flags.StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace for generated types")
	flags.BoolVar(&opts.IncludeOperations, "include-operations", false, "Include operation interfaces")
	flags.StringVar(&opts.Target, "target", targetTS, "Output language (ts or go)")
	flags.StringVar(&opts.Package, "package", "", "Package name for Go output")
	flags.VarP(&opts.Replace, "replace", "r", "Rename types matching a pattern, as 'regex -> replacement'")
	flags.BoolVar(&opts.StrictEnums, "strict-enums", false, "Fail when enumeration values collide on a member name")
	flags.StringVar(&opts.UnknownType, "unknown-type", "unknown", "TypeScript type for values with no declared type")
	flags.DurationVar(&opts.Timeout, "timeout", fetch.DefaultTimeout, "Timeout for downloading a WSDL URL")
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("namespace", flags.Lookup("namespace"))
	_ = viper.BindPFlag("include_operations", flags.Lookup("include-operations"))
	_ = viper.BindPFlag("target", flags.Lookup("target"))
	_ = viper.BindPFlag("package", flags.Lookup("package"))
	_ = viper.BindPFlag("strict_enums", flags.Lookup("strict-enums"))
	_ = viper.BindPFlag("unknown_type", flags.Lookup("unknown-type"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("wsdl2ts")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/wsdl2ts")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read config file").
			WithCause(err)
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// printfLogger passes messages from the wsdl, tsgen and gogen packages
// to zerolog at a fixed level.
type printfLogger struct {
	level     zerolog.Level
	component string
}

func (l printfLogger) Printf(format string, v ...interface{}) {
	log.WithLevel(l.level).Str("component", l.component).Msgf(format, v...)
}

// libraryLogging returns the logger and verbosity to configure the
// library packages with. At debug level every message is shown;
// otherwise only the warnings they emit at verbosity 0.
func libraryLogging(component string) (printfLogger, int) {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		return printfLogger{level: zerolog.DebugLevel, component: component}, 5
	}
	return printfLogger{level: zerolog.WarnLevel, component: component}, 0
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound:
		return 3
	case errbuilder.CodeInternal:
		return 4
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveDuration(cmd *cobra.Command, value time.Duration, key string, flagName string) time.Duration {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetDuration(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
