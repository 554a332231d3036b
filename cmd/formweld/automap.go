package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/formweld/go-formweld/pkg/formweld"
)

var (
	automapDataPath string
	automapOutPath  string
)

var automapCmd = &cobra.Command{
	Use:   "automap <template.docx>",
	Short: "Automatically map data columns to a template's placeholders",
	Long: `Scan a template for placeholders, match each one against the column
headers of the data file, and write the resulting mapping configuration.
Matches scoring below the review threshold are flagged but still applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runAutomap,
}

func init() {
	automapCmd.Flags().StringVar(&automapDataPath, "data", "", "CSV file supplying column headers (required)")
	automapCmd.Flags().StringVar(&automapOutPath, "out", "mapping.json", "where to write the mapping configuration")
	automapCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(automapCmd)
}

func runAutomap(cmd *cobra.Command, args []string) error {
	engine := formweld.New()

	tmpl, err := engine.LoadTemplate(args[0])
	if err != nil {
		return fail("load template: %v", err)
	}

	data, err := loadDataSet(automapDataPath)
	if err != nil {
		return fail("load data: %v", err)
	}

	scan, err := formweld.Scan(tmpl)
	if err != nil {
		return fail("scan %s: %v", tmpl.Name, err)
	}

	store := formweld.NewMappingStore()
	report := engine.AutoMap(store, scan.All(), data.Headers)

	if debugDump {
		spew.Fdump(cmd.ErrOrStderr(), report)
	}

	out := cmd.OutOrStdout()
	for _, entry := range report.Mapped {
		fmt.Fprintf(out, "  %-30s -> %-30s %.2f (%s)\n",
			entry.Placeholder, entry.Column, entry.Result.Confidence, entry.Result.Strategy)
	}
	for _, entry := range report.LowConfidence {
		fmt.Fprintf(out, "  review: %s -> %s scored %.2f\n",
			entry.Placeholder, entry.Column, entry.Result.Confidence)
	}
	for _, name := range report.Unmatched {
		fmt.Fprintf(out, "  unmatched: %s\n", name)
	}
	fmt.Fprintf(out, "\n%d placeholders mapped, %d need review, %d unmatched\n",
		len(report.Mapped), len(report.LowConfidence), len(report.Unmatched))

	blob, err := store.Serialize()
	if err != nil {
		return fail("serialize mapping: %v", err)
	}
	if err := os.WriteFile(automapOutPath, blob, 0o644); err != nil {
		return fail("write %s: %v", automapOutPath, err)
	}
	fmt.Fprintf(out, "mapping written to %s\n", automapOutPath)

	return nil
}
