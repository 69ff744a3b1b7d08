// Command roster runs the import pipeline offline: inspect spreadsheets,
// convert them to the standard layout and print the verification PDF.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sman2ps/dapodik/internal/config"
	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/logging"
	"github.com/sman2ps/dapodik/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the flags shared by every subcommand.
type cli struct {
	logLevel string
	class    string
	output   string

	cfg     *config.Config
	service *core.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "roster",
		Short: "Student roster tools for Dapodik verification",
		Long: `Read school roster spreadsheets (CSV or XLSX) the same way the web
application does and work with the result offline.

Available subcommands:
  inspect - Show how each file is recognised
  convert - Merge files into one standard CSV or XLSX
  pdf     - Print the verification document`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			logging.Setup(c.logLevel, "text")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.service = core.NewService(cfg.ServiceConfig())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	inspect := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Show the detected layout and row counts of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runInspect,
	}

	convert := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Merge files into one roster in the standard layout",
		Long: `Import every file in order into one roster and write it with the
standard header. The output format follows the extension of --output
(.csv or .xlsx).`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runConvert,
	}
	convert.Flags().StringVarP(&c.output, "output", "o", "", "Output file (.csv or .xlsx)")
	convert.Flags().StringVar(&c.class, "kelas", core.AllClasses, "Only keep one class")
	_ = convert.MarkFlagRequired("output")

	pdf := &cobra.Command{
		Use:   "pdf FILE...",
		Short: "Render the verification PDF for the imported roster",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runPDF,
	}
	pdf.Flags().StringVarP(&c.output, "output", "o", report.FileName, "Output PDF file")
	pdf.Flags().StringVar(&c.class, "kelas", core.AllClasses, "Only print one class")

	root.AddCommand(inspect, convert, pdf)
	return root
}

func (c *cli) runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		preview, err := c.service.Preview(cmd.Context(), filepath.Base(path), f)
		f.Close()
		if err != nil {
			return fileError(path, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		printPreview(out, path, preview)
	}
	return nil
}

func printPreview(w io.Writer, path string, p *core.PreviewResponse) {
	s := p.Summary
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  layout:         %s\n", s.Layout)
	fmt.Fprintf(w, "  rows:           %d\n", s.TotalRows)
	fmt.Fprintf(w, "  records:        %d\n", s.Records)
	fmt.Fprintf(w, "  skipped:        %d\n", s.SkippedRows)
	fmt.Fprintf(w, "  duplicate NISN: %d\n", s.DuplicateNISN)
	fmt.Fprintf(w, "  missing name:   %d\n", s.MissingNameRows)
	for _, d := range p.DuplicateSamples {
		fmt.Fprintf(w, "    NISN %s on lines %v\n", d.NISN, d.LineNumbers)
	}
}

// fileError prefers the user message for known failures.
func fileError(path string, err error) error {
	if core.IsUserFacing(err) {
		return fmt.Errorf("%s: %s", path, core.FormatUserError(err))
	}
	return fmt.Errorf("%s: %w", path, err)
}

// importAll reads every file into one fresh session, in argument order.
func (c *cli) importAll(ctx context.Context, w io.Writer, paths []string) (*core.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := core.NewSession()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		res, err := c.service.Import(ctx, sess, filepath.Base(path), f)
		f.Close()
		if err != nil {
			return nil, fileError(path, err)
		}
		fmt.Fprintf(w, "%s: %d records (%s)\n", path, res.Imported, res.Layout)
	}
	return sess, nil
}

func (c *cli) runConvert(cmd *cobra.Command, args []string) error {
	sess, err := c.importAll(cmd.Context(), cmd.ErrOrStderr(), args)
	if err != nil {
		return err
	}
	recs := sess.Roster.Filter(c.class)

	var write func(io.Writer, []core.StudentRecord) error
	switch strings.ToLower(filepath.Ext(c.output)) {
	case ".csv":
		write = core.WriteCSV
	case ".xlsx":
		write = core.WriteXLSX
	default:
		return fmt.Errorf("unsupported output type %q (use .csv or .xlsx)", filepath.Ext(c.output))
	}

	if err := writeFile(c.output, func(w io.Writer) error { return write(w, recs) }); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(recs), c.output)
	return nil
}

func (c *cli) runPDF(cmd *cobra.Command, args []string) error {
	sess, err := c.importAll(cmd.Context(), cmd.ErrOrStderr(), args)
	if err != nil {
		return err
	}
	recs := sess.Roster.Filter(c.class)
	if len(recs) == 0 {
		return errors.New(core.FormatUserError(report.ErrEmptyRoster))
	}

	opts := report.OptionsFromConfig(c.cfg.School)
	if err := writeFile(c.output, func(w io.Writer) error { return report.Render(w, recs, opts) }); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(recs), c.output)
	return nil
}

// writeFile creates path and removes it again if fill fails.
func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
