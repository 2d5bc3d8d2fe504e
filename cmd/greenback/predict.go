package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mverdier/greenback/internal/cli"
	"github.com/mverdier/greenback/internal/ingest"
	"github.com/mverdier/greenback/internal/model"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <file>",
		Short: "Classify the notes in a delimited file",
		Long: `Run the classification pipeline over a delimited-text file and print one
verdict per note plus the batch statistics. With --json the output matches
the HTTP response shape exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: runPredict,
	}

	cmd.Flags().Bool("json", false, "emit the result as JSON")

	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")

	p, err := loadPipeline()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	table, err := ingest.Decode(data)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if !asJSON {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Analyzing notes..."),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	result, err := p.Classify(ctx, table)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	printResult(cmd, filepath.Base(args[0]), result)

	if store := openStoreOrWarn(ctx); store != nil {
		defer func() { _ = store.Close() }()
		if _, err := store.RecordRun(ctx, filepath.Base(args[0]), model.SourceCLI, result.Stats); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	return nil
}

func printResult(cmd *cobra.Command, filename string, result *model.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.TitleStyle.Render(fmt.Sprintf("Results for %s", filename)))
	fmt.Fprintln(out)

	for _, pred := range result.Predictions {
		verdict := cli.FakeStyle.Render("Fake    ✗")
		if pred.Label == model.LabelGenuine {
			verdict = cli.GenuineStyle.Render("Genuine ✓")
		}
		fmt.Fprintf(out, "  Note #%-4d %s  confidence %5.1f%%\n", pred.ID, verdict, pred.Probability*100)
	}

	stats := result.Stats
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %d notes: %s, %s\n",
		cli.BoldStyle.Render("Total"),
		stats.Total,
		cli.GenuineStyle.Render(fmt.Sprintf("%d genuine (%.2f%%)", stats.GenuineCount, stats.GenuinePercentage)),
		cli.FakeStyle.Render(fmt.Sprintf("%d fake (%.2f%%)", stats.FakeCount, stats.FakePercentage)))
}
