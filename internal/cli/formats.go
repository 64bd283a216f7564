package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/muratoffalex/ytsage/internal/formats"
)

func newFormatsCommand(rt *runtime) *cobra.Command {
	var video, audio bool
	cmd := &cobra.Command{
		Use:   "formats URL",
		Short: "Show the format table of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := rt.app.Gateway().Formats(cmd.Context(), args[0])
			if all == nil {
				return fmt.Errorf("%w: %s", ErrNoResult, args[0])
			}

			// no filter flag means both kinds
			if !video && !audio {
				video, audio = true, true
			}

			localizer := rt.app.Container().Localizer
			rows := formats.Rows(all, video, audio, localizer)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), rt.localize("cli.no_formats", nil))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(formats.Headers(localizer), "\t"))
			for _, row := range rows {
				fmt.Fprintln(tw, strings.Join(row.Cells(), "\t"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&video, "video", false, "show video formats")
	cmd.Flags().BoolVar(&audio, "audio", false, "show audio-only formats")
	return cmd
}
