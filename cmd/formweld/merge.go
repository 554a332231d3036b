package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formweld/go-formweld/pkg/formweld"
)

var (
	mergeDataPath    string
	mergeMappingPath string
	mergeOutPath     string
	mergeAuto        bool
	mergeRowLimit    int
)

var mergeCmd = &cobra.Command{
	Use:   "merge <template.docx>",
	Short: "Merge data rows into a template, one section per row",
	Long: `Render one copy of the template per data row, substitute mapped
placeholders with the row's values, and concatenate the copies into a single
output document separated by page breaks.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeDataPath, "data", "", "CSV file with a header row and one data row per section (required)")
	mergeCmd.Flags().StringVar(&mergeMappingPath, "mapping", "", "mapping configuration written by automap")
	mergeCmd.Flags().StringVar(&mergeOutPath, "out", "merged.docx", "output document path")
	mergeCmd.Flags().BoolVar(&mergeAuto, "auto", false, "auto-map any placeholders the mapping file leaves unmapped")
	mergeCmd.Flags().IntVar(&mergeRowLimit, "row-limit", 0, "cap on merged rows (0 uses the configured default)")
	mergeCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	config := formweld.GetGlobalConfig()
	if mergeRowLimit > 0 {
		config.RowLimit = mergeRowLimit
	}
	engine := formweld.NewWithConfig(config)

	tmpl, err := engine.LoadTemplate(args[0])
	if err != nil {
		return fail("load template: %v", err)
	}

	data, err := loadDataSet(mergeDataPath)
	if err != nil {
		return fail("load data: %v", err)
	}

	store := formweld.NewMappingStore()
	if mergeMappingPath != "" {
		blob, err := os.ReadFile(mergeMappingPath)
		if err != nil {
			return fail("read mapping: %v", err)
		}
		if err := store.Load(blob); err != nil {
			return fail("load mapping: %v", err)
		}
	}

	scan, err := formweld.Scan(tmpl)
	if err != nil {
		return fail("scan %s: %v", tmpl.Name, err)
	}

	if mergeAuto || mergeMappingPath == "" {
		unmapped := store.UnmappedPlaceholders(scan.All())
		engine.AutoMap(store, unmapped, data.Headers)
	}

	output, err := engine.Compose(tmpl, store, data)
	if err != nil {
		return fail("compose: %v", err)
	}

	if err := os.WriteFile(mergeOutPath, output, 0o644); err != nil {
		return fail("write %s: %v", mergeOutPath, err)
	}

	rows := len(data.Rows)
	if rows > config.RowLimit {
		rows = config.RowLimit
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows merged into %s (%d placeholders, %d mapped)\n",
		rows, mergeOutPath, len(scan.All()), store.MappedCount())

	return nil
}
