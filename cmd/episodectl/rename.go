package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func printPlan(cmd *cobra.Command, plan []model.RenamePair) {
	rows := lo.Map(plan, func(p model.RenamePair, i int) []string {
		mark := ""
		if p.OldName == p.NewName {
			mark = "="
		}
		return []string{strconv.Itoa(i + 1), p.OldName, p.NewName, mark}
	})
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Current", "New", ""}, rows, []columnAlignment{alignRight}))
}

// runPlan previews, or applies when --apply is set.
func runPlan(cmd *cobra.Command, preview func() ([]model.RenamePair, error), apply func() (int, error)) error {
	if !lo.Must(cmd.Flags().GetBool("apply")) {
		plan, err := preview()
		if err != nil {
			return err
		}
		printPlan(cmd, plan)
		return nil
	}
	renamed, err := apply()
	if err != nil {
		return fmt.Errorf("renamed %d files before failing: %w", renamed, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %d files\n", renamed)
	return nil
}

func readLines(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func newTitlesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles [title...]",
		Short: "Append episode titles after each SxxEyy tag, in directory order",
		Long: "Without titles, lists the titles already present. Titles come from the\n" +
			"arguments or from --file, one per line; an empty line strips a title.",
		RunE: func(cmd *cobra.Command, args []string) error {
			titles := args
			if path := lo.Must(cmd.Flags().GetString("file")); path != "" {
				lines, err := readLines(a.fs, path)
				if err != nil {
					return fmt.Errorf("failed to read titles: %w", err)
				}
				titles = lines
			}
			if len(titles) == 0 {
				current, err := a.renamer.CurrentTitles(a.dir)
				if err != nil {
					return err
				}
				rows := lo.Map(current, func(t string, i int) []string { return []string{strconv.Itoa(i + 1), t} })
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Title"}, rows, []columnAlignment{alignRight}))
				return nil
			}
			return runPlan(cmd,
				func() ([]model.RenamePair, error) { return a.renamer.PreviewTitles(a.dir, titles) },
				func() (int, error) { return a.renamer.ApplyTitles(a.dir, titles) })
		},
	}
	cmd.Flags().StringP("file", "f", "", "Read titles from a file, one per line")
	cmd.Flags().Bool("apply", false, "Rename files instead of previewing")
	return cmd
}

func newReplaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <target> [replacement]",
		Short: "Replace every occurrence of target in video file names",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			replacement := ""
			if len(args) == 2 {
				replacement = args[1]
			}
			return runPlan(cmd,
				func() ([]model.RenamePair, error) { return a.renamer.PreviewReplace(a.dir, target, replacement) },
				func() (int, error) { return a.renamer.ApplyReplace(a.dir, target, replacement) })
		},
	}
	cmd.Flags().Bool("apply", false, "Rename files instead of previewing")
	return cmd
}

func newRenumberCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "renumber",
		Short:   "Shift every episode number by --delta",
		Example: "  episodectl renumber --delta=-12 --apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			delta := lo.Must(cmd.Flags().GetInt("delta"))
			return runPlan(cmd,
				func() ([]model.RenamePair, error) { return a.renamer.PreviewRenumber(a.dir, delta) },
				func() (int, error) { return a.renamer.ApplyRenumber(a.dir, delta) })
		},
	}
	cmd.Flags().Int("delta", 0, "Amount added to each episode number (may be negative)")
	cmd.Flags().Bool("apply", false, "Rename files instead of previewing")
	lo.Must0(cmd.MarkFlagRequired("delta"))
	return cmd
}
