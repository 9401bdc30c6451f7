package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/internal/config"
	"github.com/thoreinstein/daily/internal/doctor"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/workspace"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"create missing directories and remove leftover copies")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose workspace and configuration issues",
	Long: `Run diagnostic checks on the daily configuration and workspace tree.

Checks that the home directory resolves, the configuration loads, the
workspace root and template exist, and that no half-finished copies of the
template were left behind by interrupted runs.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  daily doctor
  daily doctor --fix

  See Also: daily init`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	PreRunE:     validateDoctorFlags,
	RunE:        runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	layout := workspace.LayoutFromConfig(currentConfig())
	target := doctor.Target{
		Layout:     layout,
		ConfigFile: config.FileUsed(),
		ConfigErr:  configLoadErr,
	}

	runner := doctor.NewRunner()
	for _, check := range doctor.DefaultChecks(target) {
		runner.AddCheck(check)
	}

	report := runner.Run()

	if doctorFix {
		fixes := runner.Fix()
		if !doctorQuiet && !doctorJSON {
			outputFixes(w, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errDoctorErrors
	}
	if report.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

func outputFixes(w io.Writer, fixes []doctor.FixResult) {
	for _, fix := range fixes {
		if fix.Fixed {
			fmt.Fprintf(w, "%s fixed: %s %s\n", color.GreenString("✓"), fix.Description, fix.Path)
			continue
		}
		fmt.Fprintf(w, "%s %s %s: %v\n", color.RedString("✗"), fix.Description, fix.Path, fix.Error)
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.DoctorReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings exits 1 without further output.
var errDoctorWarnings = errors.NewExitError(nil, errors.ExitUser)

// errDoctorErrors exits 2 without further output.
var errDoctorErrors = errors.NewExitError(nil, errors.ExitSystem)
