package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/xcore/am"
	"github.com/teranos/xcore/display"
	"github.com/teranos/xcore/ecore"
	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/export"
	"github.com/teranos/xcore/genmodel"
	"github.com/teranos/xcore/logger"
	"github.com/teranos/xcore/printer"
	"github.com/teranos/xcore/sym"
)

// stdoutDir as output directory prints units instead of writing files
const stdoutDir = "-"

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export <model.yaml>",
	Short: sym.Short("export"),
	Long: `Export every package of a model document to a notation unit.

Each unit is written to <Prefix>.xcore in the output directory, where Prefix
is the package's generator prefix. Generator settings that differ from the
configured defaults are recorded on the unit as annotations.

Customizations come from the document itself and, optionally, a TOML
sidecar given with --overrides (or export.overrides in xcore.toml).

Examples:
  xcore export model.yaml
  xcore export model.yaml --output gen --overrides model.toml
  xcore export model.yaml --package shapes --output -
  xcore export model.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	ExportCmd.Flags().StringP("output", "o", "", "Output directory, - for stdout (default: export.output_dir)")
	ExportCmd.Flags().String("overrides", "", "TOML customizations sidecar (default: export.overrides)")
	ExportCmd.Flags().StringP("package", "p", "", "Export only the named package")
	ExportCmd.Flags().Bool("json", false, "Output the run summary as JSON")
}

// exportRequest describes one export of a model document
type exportRequest struct {
	ModelPath string
	Overrides string
	OutputDir string
	Package   string
	Config    *am.Config
	Verbosity int
	Log       *zap.SugaredLogger
	Stdout    io.Writer
}

// requestFromFlags fills an export request from flags, falling back to cfg
func requestFromFlags(cmd *cobra.Command, modelPath string, cfg *am.Config) exportRequest {
	req := exportRequest{
		ModelPath: modelPath,
		OutputDir: cfg.Export.OutputDir,
		Overrides: cfg.Export.Overrides,
		Config:    cfg,
		Log:       logger.ComponentLogger("export"),
		Stdout:    cmd.OutOrStdout(),
	}
	req.Verbosity, _ = cmd.Flags().GetCount("verbose")
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		req.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("overrides"); v != "" {
		req.Overrides = v
	}
	req.Package, _ = cmd.Flags().GetString("package")
	return req
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	req := requestFromFlags(cmd, args[0], cfg)
	useJSON := display.ShouldOutputJSON(cmd)

	if !useJSON && logger.ShouldOutput(req.Verbosity, logger.OutputConfig) {
		if used := am.GetViper().ConfigFileUsed(); used != "" {
			pterm.Info.Printf("Config: %s\n", used)
		}
		pterm.Info.Printf("Verbosity: %s\n", logger.LevelName(req.Verbosity))
	}

	summary, err := exportModel(cmd.Context(), req)
	if err != nil {
		return err
	}

	if useJSON {
		return display.OutputJSON(summary)
	}
	if req.OutputDir == stdoutDir {
		return nil
	}
	if logger.ShouldOutput(req.Verbosity, logger.OutputDirectives) {
		display.RenderUnitDetails(cmd.OutOrStdout(), summary)
	}
	return display.RenderSummary(cmd.OutOrStdout(), summary)
}

// exportModel loads, exports and writes one model document
func exportModel(ctx context.Context, req exportRequest) (*display.ExportSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := req.Config
	if cfg == nil {
		cfg = am.DefaultConfig()
	}
	stdout := req.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	doc, err := ecore.LoadFile(req.ModelPath)
	if err != nil {
		return nil, err
	}

	var overrides genmodel.Overrides
	if req.Overrides != "" {
		overrides, err = genmodel.LoadOverrides(req.Overrides, doc.Packages)
		if err != nil {
			return nil, err
		}
	}

	if req.Package != "" && doc.Package(req.Package) == nil {
		return nil, errors.WithHintf(
			errors.NewNotFoundf("package %q in %s", req.Package, req.ModelPath),
			"the document declares %d package(s); omit --package to export all of them", len(doc.Packages))
	}

	exporter := export.New(export.Options{
		Defaults:  cfg.GenModel.Defaults(),
		Overrides: overrides,
		Locale:    cfg.Export.Tag(),
		Logger:    req.Log,
	})
	result, err := exporter.ExportAll(ctx, doc)
	if err != nil {
		return nil, err
	}

	summary := &display.ExportSummary{
		RunID:      result.RunID,
		Model:      req.ModelPath,
		Unresolved: result.Unresolved,
		DurationMS: result.Duration.Milliseconds(),
	}
	if req.OutputDir != stdoutDir {
		summary.OutputDir = req.OutputDir
		if err := os.MkdirAll(req.OutputDir, am.DefaultDirPermissions); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory %s", req.OutputDir)
		}
	}

	for _, a := range result.Artifacts {
		if req.Package != "" && a.Package.Name != req.Package {
			continue
		}
		text := printer.String(a.Unit)

		unit := display.UnitSummary{
			Package:  a.Package.Name,
			Location: a.Location,
			Settings: a.Settings,
			Imports:  a.Unit.Imports,
		}
		for _, c := range a.Unit.Classifiers {
			unit.Classifiers = append(unit.Classifiers, sym.ClassifierGlyph(printer.Keyword(c))+" "+c.Classifier().Name)
		}
		for _, d := range a.Unit.Directives {
			unit.Directives = append(unit.Directives, d.Name)
		}

		if req.OutputDir == stdoutDir {
			fmt.Fprintf(stdout, "// %s\n%s", a.Location, text)
		} else {
			unit.Path = filepath.Join(req.OutputDir, a.Location)
			if err := os.WriteFile(unit.Path, []byte(text), am.DefaultFilePermissions); err != nil {
				return nil, errors.Wrapf(err, "failed to write %s", unit.Path)
			}
			if logger.ShouldOutput(req.Verbosity, logger.OutputDataDump) {
				fmt.Fprint(stdout, text)
			}
		}
		logger.OrNop(req.Log).Debugw("Wrote unit",
			logger.FieldRunID, result.RunID,
			logger.FieldUnit, a.Unit.Name,
			logger.FieldFile, unit.Path)
		summary.Units = append(summary.Units, unit)
	}
	return summary, nil
}
