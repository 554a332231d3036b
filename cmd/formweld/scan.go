package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/formweld/go-formweld/pkg/formweld"
)

var scanCmd = &cobra.Command{
	Use:   "scan <template.docx> [more templates...]",
	Short: "List the placeholders found in one or more templates",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	engine := formweld.New()

	var templates []*formweld.TemplateDocument
	for _, path := range args {
		tmpl, err := engine.LoadTemplate(path)
		if err != nil {
			// One bad template does not abort the rest of the batch.
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
			continue
		}
		templates = append(templates, tmpl)
	}
	if len(templates) == 0 {
		return fail("no loadable templates")
	}

	result, err := formweld.ScanAll(templates)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	if debugDump {
		spew.Fdump(cmd.ErrOrStderr(), result)
	}

	all := result.All()
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No placeholders found.")
		return nil
	}

	for _, p := range all {
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-30s %s\n", p.Kind, p.Name, strings.Join(p.SourceDocuments, ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d documents scanned, %d placeholders found\n", len(templates), len(all))

	return nil
}
