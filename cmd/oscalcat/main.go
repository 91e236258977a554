package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/castlegate/oscalcat/pkg/catalog"
	"github.com/castlegate/oscalcat/pkg/config"
	"github.com/castlegate/oscalcat/pkg/gen"
	"github.com/castlegate/oscalcat/pkg/linkcheck"
	"github.com/castlegate/oscalcat/pkg/logging"
	"github.com/castlegate/oscalcat/pkg/render"
	"github.com/castlegate/oscalcat/pkg/server"
	"github.com/castlegate/oscalcat/pkg/watch"
	"github.com/castlegate/oscalcat/pkg/xref"
)

var version = "0.1.0"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "oscalcat",
		Short: "OSCAL catalog toolkit",
		Long: `Oscalcat works with OSCAL security-control catalogs.

It loads catalog JSON (bare or {"catalog": ...} enveloped) and produces:
  - Self-contained HTML catalog references with search and filtering
  - Terminal views of individual controls with parameters resolved
  - External link validation reports
  - Synthetic sample catalogs for demos and testing`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := logging.DefaultOptions()
			opts.Level = logLevel
			return logging.Setup(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(linksCmd())
	rootCmd.AddCommand(genCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var output string
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "export <catalog.json>",
		Short: "Export a catalog to a self-contained HTML reference",
		Long: `Export renders the whole catalog - groups, controls, resolved
parameters and cross-references - into one HTML file with embedded styling
and client-side search.

Example:
  oscalcat export nist-800-53.json
  oscalcat export nist-800-53.json --output catalog.html --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if output == "" {
				output = strings.TrimSuffix(source, filepath.Ext(source)) + ".html"
			}

			export := func() error {
				cat, err := catalog.Load(source)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, []byte(render.HTML(cat)), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Printf("Exported %s -> %s (%d controls)\n", source, output, cat.TotalControls())
				return nil
			}

			if err := export(); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err := watch.File(ctx, source, func() {
				if err := export(); err != nil {
					logrus.WithError(err).Error("re-export failed")
				}
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output HTML file (default: catalog path with .html)")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-export whenever the catalog file changes")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <catalog.json> <control-id>",
		Short: "Show the details of a single control",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			ctrl := cat.FindControl(args[1])
			if ctrl == nil {
				return fmt.Errorf("control %q not found in catalog", args[1])
			}
			printControl(render.NewControlView(ctrl, cat))
			return nil
		},
	}
}

// printControl writes a control's flattened view to stdout, one labeled
// section per line group.
func printControl(view *render.ControlView) {
	fmt.Printf("ID:      %s\n", view.ID)
	fmt.Printf("Title:   %s\n", view.Title)
	if view.Summary != "" {
		fmt.Printf("Summary: %s\n", view.Summary)
	}
	if view.Class != "" {
		fmt.Printf("Class:   %s\n", view.Class)
	}
	if view.Status != "" {
		fmt.Printf("Status:  %s\n", view.Status)
	}

	fmt.Println("\nStatement:")
	printed := false
	for _, node := range view.Parts {
		if node.Kind == render.PartStatement {
			fmt.Printf("  %s\n", node.Prose())
			printed = true
		}
	}
	if !printed {
		fmt.Println("  No statement.")
	}

	fmt.Println("\nProperties:")
	if len(view.Props) == 0 {
		fmt.Println("  No properties.")
	}
	for _, prop := range view.Props {
		fmt.Printf("  %s: %s\n", prop.Name, prop.Value)
	}

	if len(view.Roles) > 0 {
		fmt.Println("\nResponsible Roles:")
		for _, role := range view.Roles {
			fmt.Printf("  %s\n", role)
		}
	}

	if len(view.References) > 0 {
		fmt.Println("\nReferences:")
		for _, ref := range view.References {
			fmt.Printf("  %s\n", ref.Display)
		}
	}

	if len(view.Related) > 0 {
		fmt.Println("\nRelated Links:")
		for _, ref := range view.Related {
			kind := "Internal"
			if ref.Status == xref.StatusExternal {
				kind = "External"
			}
			fmt.Printf("  %s (%s)\n", ref.Display, kind)
		}
	}

	if len(view.Enhancements) > 0 {
		fmt.Println("\nEnhancements:")
		for _, enh := range view.Enhancements {
			fmt.Printf("  %s: %s\n", enh.ID, enh.Title)
		}
	}

	fmt.Println("\nParameters:")
	if len(view.Params) == 0 {
		fmt.Println("  No parameters.")
	}
	for _, param := range view.Params {
		fmt.Printf("  ID: %s\n", param.ID)
		if param.Label != "" {
			fmt.Printf("  Label: %s\n", param.Label)
		}
		if param.Usage != "" {
			fmt.Printf("  Usage: %s\n", param.Usage)
		}
		for _, constraint := range param.Constraints {
			fmt.Printf("   - %s\n", constraint)
		}
		fmt.Println()
	}
}

func linksCmd() *cobra.Command {
	var timeout time.Duration
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "links <catalog.json>",
		Short: "Validate the catalog's external reference URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}

			inputs := linkcheck.Collect(cat)
			if len(inputs) == 0 {
				fmt.Println("No external links found.")
				return nil
			}

			cfg := linkcheck.DefaultConfig()
			cfg.Timeout = timeout
			cfg.DomainDelay = delay

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			report := linkcheck.NewChecker(cfg).CheckAll(ctx, inputs)
			fmt.Print(report.Text())
			if report.Invalid > 0 || report.Errors > 0 {
				return fmt.Errorf("%d links failed validation", report.Invalid+report.Errors)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "Minimum interval between requests to one domain")
	return cmd
}

func genCmd() *cobra.Command {
	var groups, controls int
	var output string

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := gen.Catalog(groups, controls)
			if err := catalog.Save(cat, output); err != nil {
				return err
			}
			fmt.Printf("Generated %s: %d groups, %d controls\n", output, len(cat.Groups), cat.TotalControls())
			return nil
		},
	}

	cmd.Flags().IntVar(&groups, "groups", 3, "Number of control families")
	cmd.Flags().IntVar(&controls, "controls", 4, "Controls per family")
	cmd.Flags().StringVarP(&output, "output", "o", "sample-catalog.json", "Output file")
	return cmd
}

func serveCmd() *cobra.Command {
	var configPath, listen, catalogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered catalog over HTTP",
		Long: `Serve loads a catalog and presents it over HTTP: the HTML
reference at /, JSON control views under /api/controls/<id>, and the
compliance summary at /api/summary.

Settings come from flags, an optional oscalcat.yaml, and OSCALCAT_*
environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if catalogPath != "" {
				cfg.Catalog = catalogPath
			}
			if cfg.Catalog == "" {
				return fmt.Errorf("no catalog configured: pass --catalog or set it in the config file")
			}
			if err := logging.Setup(cfg.Log); err != nil {
				return err
			}

			cat, err := catalog.Load(cfg.Catalog)
			if err != nil {
				return err
			}
			return server.New(cat).Run(cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: ./oscalcat.yaml if present)")
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (overrides config)")
	return cmd
}
