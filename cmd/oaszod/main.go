// Command oaszod compiles the component schemas of an OpenAPI document into a
// TypeScript module of zod validators.
//
// Usage:
//
//	oaszod generate openapi.yaml -o schemas.ts
//	oaszod generate openapi.yaml --config oaszod.yaml --strict-objects
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reoring/oaszod"
	"github.com/reoring/oaszod/openapi"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const header = "// Code generated by oaszod. DO NOT EDIT."

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oaszod [sub-command]",
		Short: "Compile OpenAPI schemas into zod validators",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	registerLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func registerLoggingFlags(fs *pflag.FlagSet) {
	fs.String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	fs.String("logformat", "text", "set the log format (text, json)")
}

// baseLogger writes to stderr so generated code can go to stdout.
func baseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	switch lvl := cmd.Flag("loglevel").Value.String(); lvl {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", lvl)
	}

	hopts := &slog.HandlerOptions{Level: level}
	switch format := cmd.Flag("logformat").Value.String(); format {
	case "json":
		return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), hopts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

const (
	flagOutput                 = "output"
	flagConfig                 = "config"
	flagExportName             = "export-name"
	flagWithDescription        = "with-description"
	flagWithDefaultValues      = "with-default-values"
	flagImplicitRequired       = "implicit-required"
	flagAdditionalPropsDefault = "additional-properties-default"
	flagAllReadonly            = "all-readonly"
	flagStrictObjects          = "strict-objects"
	flagStrictEnums            = "strict-enums"
	flagConcurrency            = "concurrency"
	flagFailOnWarnings         = "fail-on-warnings"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <openapi-file>",
		Short: "Generate a zod module from the component schemas of a document",
		Long: `Generate reads an OpenAPI 3 document (YAML or JSON), compiles every schema
under components.schemas and writes one TypeScript module exporting a zod
validator per schema.

Options are read from --config first; flags given on the command line
override the file.`,
		Example: `  oaszod generate openapi.yaml -o src/schemas.ts
  oaszod generate openapi.json --with-description --all-readonly`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}
	fs := cmd.Flags()
	fs.StringP(flagOutput, "o", "", "output file, stdout when empty")
	fs.StringP(flagConfig, "c", "", "options file (YAML or JSON)")
	fs.String(flagExportName, "schemas", "name of the exported schema map")
	fs.Bool(flagWithDescription, false, "emit describe() with descriptions and backend validation notes")
	fs.Bool(flagWithDefaultValues, true, "emit default() modifiers")
	fs.Bool(flagImplicitRequired, false, "treat properties as required when an object has no required list")
	fs.Bool(flagAdditionalPropsDefault, true, "let unknown keys pass through when additionalProperties is unset")
	fs.Bool(flagAllReadonly, false, "mark arrays, records and objects readonly()")
	fs.Bool(flagStrictObjects, false, "reject unknown object keys with strict()")
	fs.Bool(flagStrictEnums, false, "fail on enums mixing strings into a non-string type")
	fs.Int(flagConcurrency, 1, "number of schemas compiled in parallel")
	fs.Bool(flagFailOnWarnings, false, "exit with an error when loading or compiling produced warnings")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := baseLogger(cmd)
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	opts.Logger = logger

	doc, diag, err := openapi.LoadFile(args[0])
	if err != nil {
		return err
	}
	warnings := diag.Warnings()
	for _, w := range warnings {
		logger.Warn(w, "input", args[0])
	}

	// compiler warnings are logged through opts.Logger as they occur
	res, err := oaszod.CompileDocument(cmd.Context(), doc, opts)
	if err != nil {
		return err
	}
	warnings = append(warnings, res.Warnings...)

	exportName, _ := cmd.Flags().GetString(flagExportName)
	out, err := oaszod.Render(res, oaszod.RenderOptions{ExportName: exportName, Header: header})
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString(flagOutput)
	if err := write(cmd.OutOrStdout(), path, out); err != nil {
		return err
	}
	logger.Info("generated", "input", args[0], "output", path, "schemas", len(res.Schemas))

	if fail, _ := cmd.Flags().GetBool(flagFailOnWarnings); fail && len(warnings) > 0 {
		return fmt.Errorf("%d warning(s): %s", len(warnings), strings.Join(warnings, "; "))
	}
	return nil
}

// optionsFromFlags loads --config, then applies the flags set explicitly on
// the command line.
func optionsFromFlags(cmd *cobra.Command) (oaszod.Options, error) {
	fs := cmd.Flags()
	opts := oaszod.DefaultOptions()
	if path, _ := fs.GetString(flagConfig); path != "" {
		var err error
		if opts, err = oaszod.LoadOptions(path); err != nil {
			return oaszod.Options{}, err
		}
	}

	bools := map[string]*bool{
		flagWithDescription:        &opts.WithDescription,
		flagWithDefaultValues:      &opts.WithDefaultValues,
		flagImplicitRequired:       &opts.WithImplicitRequiredProps,
		flagAdditionalPropsDefault: &opts.AdditionalPropertiesDefaultValue,
		flagAllReadonly:            &opts.AllReadonly,
		flagStrictObjects:          &opts.StrictObjects,
		flagStrictEnums:            &opts.StrictEnums,
	}
	for name, dst := range bools {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return oaszod.Options{}, err
		}
		*dst = v
	}
	if fs.Changed(flagConcurrency) {
		n, err := fs.GetInt(flagConcurrency)
		if err != nil {
			return oaszod.Options{}, err
		}
		opts.Concurrency = n
	}
	return opts, nil
}

func write(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the oaszod version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "oaszod %s\n", version)
			return err
		},
	}
}
