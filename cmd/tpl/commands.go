package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tplkit/template"
)

// contextFlags selects where a render context comes from.
type contextFlags struct {
	jsonText string
	file     string
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.jsonText, "json", "j", "", "Context as a JSON object")
	cmd.Flags().StringVarP(&f.file, "context", "c", "", "Context file (.json, .yaml, .yml or .toml)")
}

// load decodes the context from at most one of positional, --json and
// --context. With none given the context is empty.
func (f *contextFlags) load(positional []string) (template.Context, error) {
	sources := 0
	for _, set := range []bool{len(positional) > 0, f.jsonText != "", f.file != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("give the context only once: positional JSON, --json or --context")
	}

	switch {
	case len(positional) > 0:
		return template.DecodeContext([]byte(positional[0]))
	case f.jsonText != "":
		return template.DecodeContext([]byte(f.jsonText))
	case f.file != "":
		return template.DecodeContextFile(f.file)
	default:
		return template.Context{}, nil
	}
}

// templateSource returns the template text from --file or the first
// positional argument, along with the remaining arguments.
func templateSource(file string, args []string) (string, []string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("read template: %w", err)
		}
		return string(data), args, nil
	}
	if len(args) == 0 {
		return "", nil, errors.New("template text or --file is required")
	}
	return args[0], args[1:], nil
}

func newRenderCmd(a *app) *cobra.Command {
	var file string
	var ctxFlags contextFlags

	cmd := &cobra.Command{
		Use:   "render [TEMPLATE] [CONTEXT_JSON]",
		Short: "Render a template against a context",
		Example: `  tpl render 'Hello, {{ name }}. {{ greet | title }}' '{"name": "sir", "greet": "what DO you think???"}'
  tpl render --file greeting.tpl --context ctx.yaml`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, rest, err := templateSource(file, args)
			if err != nil {
				return err
			}
			if len(rest) > 1 {
				return fmt.Errorf("unexpected argument %q", rest[1])
			}

			tmpl, err := a.engine.Parse(src)
			if err != nil {
				return err
			}
			ctx, err := ctxFlags.load(rest)
			if err != nil {
				return err
			}
			out, err := tmpl.RenderWith(a.engine.Registry(), ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")
	ctxFlags.register(cmd)
	return cmd
}

func newVarsCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "vars [TEMPLATE]",
		Short: "Print the variables a template references as a JSON array",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := templateSource(file, args)
			if err != nil {
				return err
			}
			vars, err := a.engine.Variables(src)
			if err != nil {
				return err
			}
			if vars == nil {
				vars = []string{}
			}

			data, err := json.Marshal(vars)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "schema [TEMPLATE]",
		Short: "Print the JSON Schema of the context a template needs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := templateSource(file, args)
			if err != nil {
				return err
			}
			tmpl, err := a.engine.Parse(src)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(template.ContextSchema(tmpl), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")
	return cmd
}

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the available filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.engine.Registry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
