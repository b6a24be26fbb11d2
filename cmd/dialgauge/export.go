package main

import (
	"fmt"
	"runtime"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/roffe/dialgauge/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every gauge in the config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		formatName, _ := cmd.Flags().GetString("format")
		jobs, _ := cmd.Flags().GetInt("jobs")
		openDir, _ := cmd.Flags().GetBool("open")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if len(cfg.Gauges) == 0 {
			return fmt.Errorf("no gauges configured")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		paths, err := export.All(cmd.Context(), dir, cfg.Gauges, format, jobs)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		if openDir {
			return open.Run(dir)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "gauges", "output directory")
	exportCmd.Flags().String("format", string(export.FormatSVG), "output format, svg or png")
	exportCmd.Flags().Int("jobs", runtime.NumCPU(), "gauges rendered in parallel")
	exportCmd.Flags().Bool("open", false, "open the output directory when done")
}
