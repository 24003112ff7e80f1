package main

import (
	"fmt"

	"showcase/internal/dataset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd reports shape problems in a dataset file
var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Check a dataset file for missing fields",
	Long: `Loads a dataset and lists records with missing fields. Nothing is
rewritten. Missing titles are errors because such projects can never be
found by search; other gaps are warnings.

Exits non-zero when any error is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := cfg.Dataset.Path
	if len(args) == 1 {
		path = args[0]
	}

	groups, err := dataset.Load(path)
	if err != nil {
		return err
	}

	issues := dataset.Inspect(groups)
	logger.Debug("Dataset inspected", zap.String("path", path), zap.Int("issues", len(issues)))

	out := cmd.OutOrStdout()
	projects, errs := 0, 0
	for _, g := range groups {
		projects += len(g.Projects)
	}
	for _, issue := range issues {
		if issue.Severity == dataset.SeverityError {
			errs++
		}
		fmt.Fprintln(out, issue.String())
	}

	name := path
	if name == "" {
		name = "built-in sample"
	}
	fmt.Fprintf(out, "%s: %d contributors, %d projects, %d issues\n", name, len(groups), projects, len(issues))

	if dataset.HasErrors(issues) {
		return fmt.Errorf("dataset has %d error(s)", errs)
	}
	return nil
}
