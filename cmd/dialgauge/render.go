package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/roffe/dialgauge/pkg/config"
	"github.com/roffe/dialgauge/pkg/export"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single gauge",
	Long:  "Render a single gauge described by flags. Output goes to stdout unless -o is given.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		g := config.GaugeConfig{Name: "gauge"}
		g.Value, _ = f.GetString("value")
		g.MainTitle, _ = f.GetString("main-title")
		g.SubTitle, _ = f.GetString("sub-title")
		g.ScaleStart, _ = f.GetString("scale-start")
		g.ScaleEnd, _ = f.GetString("scale-end")
		g.ScaleOffset, _ = f.GetString("scale-offset")
		g.ArcColor, _ = f.GetString("arc-color")
		g.Width, _ = f.GetInt("width")
		g.Height, _ = f.GetInt("height")
		formatName, _ := f.GetString("format")
		output, _ := f.GetString("output")
		openFile, _ := f.GetBool("open")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if g.Width <= 0 || g.Height <= 0 {
			return fmt.Errorf("invalid size %dx%d", g.Width, g.Height)
		}
		if openFile && output == "" {
			return fmt.Errorf("--open needs --output")
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()
			w = file
		}
		if err := export.Render(w, g, format); err != nil {
			return err
		}
		if openFile {
			return open.Run(output)
		}
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.String("value", "", "value to show, empty leaves the gauge without value")
	f.String("main-title", "", "title above the arc")
	f.String("sub-title", "", "subtitle below the arc")
	f.String("scale-start", "", "lowest value on the scale (default 0)")
	f.String("scale-end", "", "highest value on the scale (default 100)")
	f.String("scale-offset", "", "degrees cut from each side of the bottom, 0-180 (default 0)")
	f.String("arc-color", "", `arc color: hex, "topic", "scale" or "scale:<mode>"`)
	f.Int("width", config.DefaultGaugeWidth, "width in px")
	f.Int("height", config.DefaultGaugeHeight, "height in px")
	f.String("format", string(export.FormatSVG), "output format, svg or png")
	f.StringP("output", "o", "", "output file")
	f.Bool("open", false, "open the written file")
}
