package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordweave/wordweave/internal/recognize"
	"github.com/wordweave/wordweave/internal/render"
	"github.com/wordweave/wordweave/internal/style"
)

var (
	flagTheme       string
	flagThemeDir    string
	flagStyleConfig string
	flagFontFamily  string
	flagFontSize    float64
	flagLineSpacing float64
	flagPageMargin  float64
	flagPaperSize   string
	flagPageNumbers bool
	flagCharts      bool
	flagChartData   string
	flagOutput      string
	flagVerbose     bool
)

var renderCmd = &cobra.Command{
	Use:   "render <markdown-file>",
	Short: "Render a Markdown file to DOCX",
	Long: `Render reads a Markdown file and writes a formatted Word document.

The output path defaults to the document title (first # heading) next to
the input file. Chart generation requires either --chart-data with a JSON
payload or ANTHROPIC_API_KEY set for automatic recognition.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagTheme, "theme", "t", "", "theme name (defaults to the catalog default)")
	renderCmd.Flags().StringVar(&flagThemeDir, "theme-dir", "", "directory with extra theme and template YAML files")
	renderCmd.Flags().StringVar(&flagStyleConfig, "style-config", "", "JSON file with style overrides")
	renderCmd.Flags().StringVar(&flagFontFamily, "font-family", "", "override body font family")
	renderCmd.Flags().Float64Var(&flagFontSize, "font-size", 0, "override body font size in points")
	renderCmd.Flags().Float64Var(&flagLineSpacing, "line-spacing", 0, "override line spacing (multiple below 20, exact points above)")
	renderCmd.Flags().Float64Var(&flagPageMargin, "page-margin", 0, "override all four page margins in centimeters")
	renderCmd.Flags().StringVar(&flagPaperSize, "paper-size", "", "paper size: a4, letter or legal")
	renderCmd.Flags().BoolVar(&flagPageNumbers, "page-numbers", true, "add page numbers in the footer")
	renderCmd.Flags().BoolVar(&flagCharts, "charts", false, "render charts from data")
	renderCmd.Flags().StringVar(&flagChartData, "chart-data", "", "JSON file with chart specs")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output .docx path")
	renderCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]

	markdown, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	catalog, err := style.LoadCatalog(flagThemeDir)
	if err != nil {
		return fmt.Errorf("load themes: %w", err)
	}

	var overrides *style.Overrides
	if flagStyleConfig != "" {
		raw, err := os.ReadFile(flagStyleConfig)
		if err != nil {
			return fmt.Errorf("read style config: %w", err)
		}
		overrides, err = style.DecodeOverrides(raw)
		if err != nil {
			return fmt.Errorf("style config: %w", err)
		}
	}

	var chartPayload []byte
	if flagChartData != "" {
		chartPayload, err = os.ReadFile(flagChartData)
		if err != nil {
			return fmt.Errorf("read chart data: %w", err)
		}
	}

	var recognizer render.Recognizer
	if flagCharts && chartPayload == nil {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("--charts without --chart-data requires ANTHROPIC_API_KEY")
		}
		claude := recognize.NewClaudeClient(apiKey, os.Getenv("ANTHROPIC_MODEL"))
		defer claude.Close()
		recognizer = claude
	}

	logOut := os.Stderr
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	svc := render.NewService(catalog, recognizer, log, 4)

	req := render.Request{
		Markdown: string(markdown),
		Theme:    flagTheme,
		Settings: render.Settings{
			FontFamily:   flagFontFamily,
			FontSize:     flagFontSize,
			LineSpacing:  flagLineSpacing,
			PageMarginCm: flagPageMargin,
			PaperSize:    flagPaperSize,
		},
		Overrides:    overrides,
		EnableCharts: flagCharts,
		ChartPayload: chartPayload,
		OutputFile:   outputName(),
	}
	if cmd.Flags().Changed("page-numbers") {
		req.Settings.PageNumbers = &flagPageNumbers
	}

	artifact, err := svc.Render(context.Background(), req)
	if err != nil {
		return err
	}

	dest := flagOutput
	if dest == "" {
		dest = filepath.Join(filepath.Dir(input), artifact.Result.OutputFile)
	}
	if err := os.WriteFile(dest, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	for _, w := range artifact.Result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Printf("✓ Written: %s (%d blocks, %d bytes)\n",
		dest, artifact.Result.BlocksRendered, artifact.Result.ByteSize)
	if artifact.Result.ChartsEnabled {
		fmt.Printf("  charts: %d rendered, %d skipped\n",
			artifact.Result.ChartsRendered, artifact.Result.SkippedCharts)
	}
	return nil
}

// outputName turns --output into the service-facing filename so the
// derived name still applies when -o is not set.
func outputName() string {
	if flagOutput == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(flagOutput), ".docx") + ".docx"
}
