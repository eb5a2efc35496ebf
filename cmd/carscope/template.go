package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carscope/carscope/pkg/checklist"
)

func newTemplateCmd() *cobra.Command {
	var (
		templatePath string
		validate     bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print or validate a checklist template",
		Long:  `Prints the checklist template as YAML, or with --validate checks a custom template and summarises it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd.OutOrStdout(), templatePath, validate)
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Path to a checklist template (default: config or built-in)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the template instead of printing it")

	return cmd
}

func runTemplate(w io.Writer, path string, validate bool) error {
	path = firstNonEmpty(path, loadConfig(".").Template.Path)
	tmpl, err := loadTemplate(path)
	if err != nil {
		return err
	}
	if tmpl == nil {
		tmpl = checklist.Default()
	}

	if validate {
		// LoadTemplate already validated; the built-in template is checked here.
		if err := tmpl.Validate(); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: valid, %d categories, %d items\n",
			firstNonEmpty(tmpl.Name, path), len(tmpl.Categories), tmpl.ItemCount())
		return nil
	}

	data, err := tmpl.Marshal()
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	_, err = w.Write(data)
	return err
}
