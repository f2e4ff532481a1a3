package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rgehrsitz/taxview/internal/breakeven"
	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/compare"
	"github.com/rgehrsitz/taxview/internal/config"
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/logging"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/server"
	"github.com/rgehrsitz/taxview/internal/tui"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxview %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxview",
		Short:         "Progressive federal income tax calculator",
		Long:          "Breaks a gross income down across the federal tax brackets and shows what is paid and kept in each.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(chartCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(tuiCmd())
	root.AddCommand(versionCmd())
	return root
}

// cliLogger returns a development logger at debug level when --debug is set,
// otherwise a no-op logger so command output stays clean
func cliLogger(cmd *cobra.Command) *zap.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return logging.MustNew(true, true)
	}
	return zap.NewNop()
}

// loadCalculator reads the facts file (or the embedded default) and builds a calculator
func loadCalculator(cmd *cobra.Command, logger *zap.Logger) (*calculation.BracketTaxCalculator, error) {
	factsFile, _ := cmd.Flags().GetString("facts")
	facts, err := config.NewTaxFactsParser().Load(factsFile)
	if err != nil {
		return nil, err
	}

	calc, err := calculation.NewBracketTaxCalculator(*facts)
	if err != nil {
		return nil, err
	}
	calc.SetLogger(logger.Sugar())
	return calc, nil
}

func parseIncomeArg(raw string) (decimal.Decimal, error) {
	income, err := calculation.ParseIncome(raw)
	if err != nil {
		return income, errors.Errorf("invalid income %q: %s", raw, errors.Cause(err))
	}
	return income, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate <income>",
		Short: "Calculate the bracket breakdown for a gross income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer func() { _ = logger.Sync() }()

			income, err := parseIncomeArg(args[0])
			if err != nil {
				return err
			}
			calc, err := loadCalculator(cmd, logger)
			if err != nil {
				return err
			}
			report := calc.Calculate(income)

			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")
			save, _ := cmd.Flags().GetBool("save")

			f := output.GetFormatterByName(format)
			if f == nil {
				return errors.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.FormatterNames(), ", "))
			}

			switch {
			case outputPath != "":
				if err := output.GenerateReport(&report, format, outputPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outputPath)
			case save || format == "pdf":
				filename, err := output.WriteFormatted(f, &report, format)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", filename)
			default:
				data, err := f.Format(&report)
				if err != nil {
					return errors.Wrapf(err, "%s formatter", f.Name())
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.FormatterNames(), ", ")+")")
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file (default: embedded 2024 single filer table)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("save", false, "Write the report to tax_report_<timestamp>.<format>")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [facts-file]",
		Short: "Validate a tax facts file (the embedded table when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "embedded tax facts"
			path := ""
			if len(args) == 1 {
				path = args[0]
				name = filepath.Base(path)
			}

			facts, err := config.NewTaxFactsParser().Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s are valid: %s\n", name, describeFacts(facts))
			return nil
		},
	}
}

func describeFacts(facts *domain.TaxFacts) string {
	return fmt.Sprintf("%d %s, standard deduction %s, %d brackets",
		facts.TaxYear, facts.FilingStatus, output.FormatCurrency(facts.StandardDeduction), len(facts.Brackets))
}

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <income>",
		Short: "Print the stacked bar chart data for an income as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer func() { _ = logger.Sync() }()

			income, err := parseIncomeArg(args[0])
			if err != nil {
				return err
			}
			calc, err := loadCalculator(cmd, logger)
			if err != nil {
				return err
			}
			report := calc.Calculate(income)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(output.NewStackedBarChart(report.BracketDetails, report.TaxableIncome))
		},
	}
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <base-income> <income>...",
		Short: "Compare tax and take-home pay across incomes",
		Long:  "Calculates each income against the same tax table and reports how tax and take-home pay change relative to the base income.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer func() { _ = logger.Sync() }()

			amounts := make([]decimal.Decimal, 0, len(args))
			for _, arg := range args {
				income, err := parseIncomeArg(arg)
				if err != nil {
					return err
				}
				amounts = append(amounts, income)
			}

			calc, err := loadCalculator(cmd, logger)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(calc).Compare(cmd.Context(), amounts[0], amounts[1:])
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var rendered string
			switch format {
			case "table":
				rendered = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				rendered = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				rendered, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				rendered, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				rendered += "\n"
			default:
				return fmt.Errorf("unsupported format: %s (supported: table, compact, csv, json)", format)
			}
			if err != nil {
				return errors.Wrap(err, "format comparison")
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json")
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file")
	return cmd
}

var goalFlags = map[string]breakeven.SolveGoal{
	"take-home":      breakeven.GoalTakeHome,
	"tax":            breakeven.GoalTotalTax,
	"effective-rate": breakeven.GoalEffectiveRate,
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the gross income that reaches a take-home, tax or effective-rate target",
		Example: `  taxview solve --take-home 60000
  taxview solve --effective-rate 0.15
  taxview solve --take-home 40000 --ladder 60000,80000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			defer func() { _ = logger.Sync() }()

			var req breakeven.SolveRequest
			for name, goal := range goalFlags {
				if !cmd.Flags().Changed(name) {
					continue
				}
				raw, _ := cmd.Flags().GetString(name)
				target, err := decimal.NewFromString(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("invalid --%s %q", name, raw)
				}
				req = breakeven.SolveRequest{Goal: goal, Target: target}
			}

			ladderRaw, _ := cmd.Flags().GetStringSlice("ladder")
			ladder := make([]breakeven.SolveRequest, 0, len(ladderRaw))
			for _, raw := range ladderRaw {
				target, err := decimal.NewFromString(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("invalid --ladder target %q", raw)
				}
				ladder = append(ladder, breakeven.SolveRequest{Goal: req.Goal, Target: target})
			}

			calc, err := loadCalculator(cmd, logger)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(calc)

			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format: %s (supported: table, json)", format)
			}

			var result interface{}
			if len(ladder) > 0 {
				result, err = solver.SolveLadder(cmd.Context(), req, ladder)
			} else {
				result, err = solver.Solve(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			var rendered string
			switch r := result.(type) {
			case *breakeven.MultiSolveResult:
				rendered = (&breakeven.TableFormatter{}).FormatLadder(r)
			case *breakeven.SolveResult:
				rendered = (&breakeven.TableFormatter{}).Format(r)
			}
			if format == "json" {
				rendered, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return errors.Wrap(err, "format solve result")
				}
				rendered += "\n"
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	cmd.Flags().String("take-home", "", "Target money kept after tax, in dollars")
	cmd.Flags().String("tax", "", "Target total tax owed, in dollars")
	cmd.Flags().String("effective-rate", "", "Target effective tax rate as a fraction (0.15)")
	cmd.Flags().StringSlice("ladder", nil, "Further targets for the same goal, comma separated")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, json")
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file")
	cmd.MarkFlagsMutuallyExclusive("take-home", "tax", "effective-rate")
	cmd.MarkFlagsOneRequired("take-home", "tax", "effective-rate")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web calculator and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("facts") {
				cfg.FactsFile, _ = cmd.Flags().GetString("facts")
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch, _ = cmd.Flags().GetBool("watch")
			}

			debugMode, _ := cmd.Flags().GetBool("debug")
			logger, err := logging.New(cfg.IsDevelopment(), debugMode)
			if err != nil {
				return errors.Wrap(err, "initialize logger")
			}
			defer func() { _ = logger.Sync() }()

			if !cfg.IsDevelopment() {
				gin.SetMode(gin.ReleaseMode)
			}

			facts, err := config.NewTaxFactsParser().Load(cfg.FactsFile)
			if err != nil {
				return err
			}
			store, err := server.NewFactsStore(facts, logger)
			if err != nil {
				return err
			}
			logger.Info("Loaded tax facts",
				zap.String("source", factsSource(cfg.FactsFile)),
				zap.Int("tax_year", facts.TaxYear),
				zap.String("filing_status", facts.FilingStatus))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, store, logger).Run(ctx)
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides PORT)")
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file (overrides TAXVIEW_FACTS)")
	cmd.Flags().Bool("watch", false, "Reload the facts file when it changes (overrides TAXVIEW_WATCH)")
	cmd.Flags().String("env-file", ".env", "Optional dotenv file to load before reading the environment")
	return cmd
}

func factsSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// debug logs would corrupt the alternate screen
			calc, err := loadCalculator(cmd, zap.NewNop())
			if err != nil {
				return err
			}

			income, _ := cmd.Flags().GetString("income")
			p := tea.NewProgram(
				tui.NewModel(calc, income),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "running TUI")
			}
			return nil
		},
	}
	cmd.Flags().String("facts", "", "Path to a tax facts YAML file")
	cmd.Flags().String("income", "", "Income to calculate on start")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
