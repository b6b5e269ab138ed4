package main

import (
	"fmt"
	"strconv"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/scanner"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// export writes lines when --export is set; "-" picks the default name in the working directory.
func export(cmd *cobra.Command, a *app, prefix string, lines []string) error {
	path := lo.Must(cmd.Flags().GetString("export"))
	if path == "" {
		return nil
	}
	if path == "-" {
		path = scanner.ExportName(prefix, a.dir) + ".txt"
	}
	if err := scanner.ExportList(a.fs, path, lines); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d lines to %s\n", len(lines), path)
	return nil
}

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List every video file below the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := interruptible(cmd)
			defer cancel()
			files, err := a.scanner.Scan(ctx, a.dir)
			if err != nil {
				return err
			}
			paths := lo.Map(files, func(f model.VideoFile, _ int) string { return f.Path })
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return export(cmd, a, scanner.MediaFilesPrefix, paths)
		},
	}
	cmd.Flags().String("export", "", `Also write the list to this file ("-" for the default name)`)
	return cmd
}

func newSizesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Show the size of each entry of the directory, largest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := interruptible(cmd)
			defer cancel()
			entries, err := a.scanner.SizeReport(ctx, a.dir)
			if err != nil {
				return err
			}
			rows := lo.Map(entries, func(e model.SizedEntry, _ int) []string {
				name := e.Name
				if e.IsDir {
					name += "/"
				}
				return []string{name, e.SizeHuman, strconv.FormatInt(e.Size, 10)}
			})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Size", "Bytes"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight}))

			lines := lo.Map(entries, func(e model.SizedEntry, _ int) string {
				return fmt.Sprintf("%s\t%s", e.Name, e.SizeHuman)
			})
			return export(cmd, a, scanner.FileSizesPrefix, lines)
		},
	}
	cmd.Flags().String("export", "", `Also write the report to this file ("-" for the default name)`)
	return cmd
}
