package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carscope/carscope/pkg/scoring"
)

func newSeverityCmd() *cobra.Command {
	var status, itemType string

	cmd := &cobra.Command{
		Use:   "severity",
		Short: "Print the suggested cost severity for a status and item type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeverity(cmd.OutOrStdout(), status, itemType)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Checklist status: OK, MINOR, MAJOR or NA (required)")
	cmd.Flags().StringVar(&itemType, "item-type", string(scoring.ItemGeneral), "Item type, e.g. BODY_PANEL or ENGINE")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func runSeverity(w io.Writer, status, itemType string) error {
	s := scoring.ChecklistStatus(strings.ToUpper(status))
	if !s.Valid() {
		return scoring.NewValidationError("status", status, scoring.ErrUnknownStatus)
	}
	t := scoring.ItemType(strings.ToUpper(itemType))
	if !t.Valid() {
		return scoring.NewValidationError("item_type", itemType, scoring.ErrUnknownItemType)
	}
	fmt.Fprintln(w, int(scoring.SuggestedSeverity(s, t)))
	return nil
}

func newGradeCmd() *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Print the letter grade and colour for a health score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd.OutOrStdout(), score)
		},
	}

	cmd.Flags().IntVar(&score, "score", -1, "Health score 0-100 (required)")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func runGrade(w io.Writer, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range 0-100", score)
	}
	g := scoring.HealthScoreToGrade(score)
	fmt.Fprintf(w, "%s %s\n", g, scoring.GradeColor(g).Hex())
	return nil
}
