package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grapheq/grapheq/pkg/canonical"
)

// ErrGraphsDiffer is returned by the diff command when the two graphs are
// not structurally equal, so the process exits with a nonzero status.
var ErrGraphsDiffer = errors.New("graphs differ")

// diffCommand creates the 'diff' command.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		format string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "diff LEFT RIGHT",
		Short: "Compare two graphs structurally",
		Long:  `Canonicalize two graph files and compare the results. The files may use different formats and node identifiers; only structure, labels, types, and property values matter. Exits nonzero when the graphs differ.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := loadGraph(args[0], format)
			if err != nil {
				return err
			}
			right, err := loadGraph(args[1], format)
			if err != nil {
				return err
			}

			leftForm, err := canonical.Canonicalize(left)
			if err != nil {
				return err
			}
			rightForm, err := canonical.Canonicalize(right)
			if err != nil {
				return err
			}

			if leftForm == rightForm {
				if !quiet {
					printSuccess("Graphs are structurally equal")
					printStats(left.NodeCount(), left.RelationshipCount(), false)
				}
				return nil
			}

			if !quiet {
				printError("Graphs differ")
				printRecordDiff(leftForm, rightForm)
			}
			return ErrGraphsDiffer
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format for both files: gdl or json (default: by extension)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output, only set the exit status")

	return cmd
}

// printRecordDiff walks the two sorted record lists in lockstep and prints
// each record with a marker: '-' for left only, '+' for right only.
func printRecordDiff(leftForm, rightForm string) {
	left := splitRecords(leftForm)
	right := splitRecords(rightForm)

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		switch {
		case left[i] == right[j]:
			printDiffCommon(left[i])
			i++
			j++
		case left[i] < right[j]:
			printDiffLeft(left[i])
			i++
		default:
			printDiffRight(right[j])
			j++
		}
	}
	for ; i < len(left); i++ {
		printDiffLeft(left[i])
	}
	for ; j < len(right); j++ {
		printDiffRight(right[j])
	}
}

func splitRecords(form string) []string {
	if form == "" {
		return nil
	}
	return strings.Split(form, "\n")
}
