package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tplkit/store"
	"github.com/randalmurphal/tplkit/template"
)

func newWatchCmd(a *app) *cobra.Command {
	var dir, ext, contextFile string

	cmd := &cobra.Command{
		Use:   "watch NAME",
		Short: "Render a stored template and re-render it whenever the template directory changes",
		Long: `watch loads every template file in --dir, renders NAME, and renders it
again after each change to the directory until interrupted. Reload and render
errors are reported on stderr and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if dir == "" {
				dir = a.cfg.TemplateDir
			}
			if ext == "" {
				ext = a.cfg.TemplateExt
			}

			ctx := template.Context{}
			if contextFile != "" {
				var err error
				if ctx, err = template.DecodeContextFile(contextFile); err != nil {
					return err
				}
			}

			s, err := store.New(dir,
				store.WithExtension(ext),
				store.WithEngine(a.engine),
				store.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			render := func() {
				out, err := s.Render(name, ctx)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			render()
			s.Watch(cmd.Context(), func(err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					return
				}
				render()
			})

			a.logger.Debug("watch stopped", slog.String("dir", dir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Template directory (default: template_dir from config)")
	cmd.Flags().StringVar(&ext, "ext", "", "Template file extension (default: template_ext from config)")
	cmd.Flags().StringVarP(&contextFile, "context", "c", "", "Context file (.json, .yaml, .yml or .toml)")
	return cmd
}
