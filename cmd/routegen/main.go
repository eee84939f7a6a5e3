// Command routegen scans the API handler files for their @description and
// @methods annotations and writes the route listing embedded by the server.
//
// Usage:
//
//	go run ./cmd/routegen                      # rewrite internal/directory/routes.json
//	go run ./cmd/routegen -o - --format text   # print a summary to stdout
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aoideee/tharaday-api/internal/directory"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

type options struct {
	dir     string
	out     string
	format  string
	exclude []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "routegen",
		Short: "Generate the API route directory from handler annotations",
		Long: `routegen reads every handlers_<name>.go file in the API source directory,
extracts the @description and @methods annotations from the comment block
above the package clause, and writes the listing served at /routes.

Routes without a description get "No description yet." and routes without
methods default to GET. The listing is sorted by path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", filepath.Join("cmd", "api"), "Directory containing the handler files")
	cmd.Flags().StringVarP(&opts.out, "out", "o", filepath.Join("internal", "directory", "routes.json"), `Output file ("-" for stdout)`)
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json, text or html")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Route names to leave out of the listing")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	routes, err := directory.Scan(os.DirFS(opts.dir), opts.exclude...)
	if err != nil {
		return fmt.Errorf("scan %s: %w", opts.dir, err)
	}

	var buf bytes.Buffer
	switch opts.format {
	case "json":
		err = directory.Encode(&buf, directory.Listing{Routes: routes})
	case "text":
		err = writeText(&buf, routes)
	case "html":
		err = directory.RenderHTML(&buf, routes)
	default:
		return fmt.Errorf("unknown format %q (want json, text or html)", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err = io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}

	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(),
		successStyle.Render("✓ ")+fmt.Sprintf("wrote %d routes to %s", len(routes), opts.out))
	if len(opts.exclude) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("  excluded: "+strings.Join(opts.exclude, ", ")))
	}
	return nil
}

// writeText prints one aligned line per route.
func writeText(w io.Writer, routes []directory.Route) error {
	width := 0
	for _, r := range routes {
		width = max(width, len(r.Path))
	}
	for _, r := range routes {
		_, err := fmt.Fprintf(w, "%-*s  %-24s  %s\n", width, r.Path, strings.Join(r.Methods, ","), r.Description)
		if err != nil {
			return err
		}
	}
	return nil
}
