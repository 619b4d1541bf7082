package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/ytf/internal/display"
	"github.com/gauthierbraillon/ytf/internal/server"
	"github.com/gauthierbraillon/ytf/internal/service"
)

// newVideoCmd creates the video subcommand.
func newVideoCmd() *cobra.Command {
	var at int
	var open bool

	cmd := &cobra.Command{
		Use:   "video <video-url>",
		Short: "Show how a video link will play",
		Long: "Classify a video link. YouTube links get an embed URL starting at the moment; " +
			"other platforms are opened on the original site.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := offsetFlag(cmd, at)
			if err != nil {
				return err
			}

			p, err := service.PreviewVideo(args[0], offset)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatPreview(p))

			if open {
				return openVideo(cmd, p.RawURL, p.OffsetSeconds)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&at, "at", "a", 0, "Start offset in seconds (default: the link's t= parameter)")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the video in the browser")

	return cmd
}

// newLaunchCmd creates the launch subcommand.
func newLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <launch-url>",
		Short: "Read a bookmarklet launch URL",
		Long: "Parse the video and t parameters of a launch URL such as " +
			"http://localhost:8787/#/feedback?video=...&t=42 and show the pre-filled form.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := service.PreviewLaunch(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Video URL: %s\n", p.RawURL)
			fmt.Fprintf(cmd.OutOrStdout(), "Offset:    %d seconds\n\n", p.OffsetSeconds)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatPreview(p))
			return nil
		},
	}
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		Long:  "Serve ytf on a local HTTP address so a browser bookmarklet can send videos to it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving ytf on http://%s\n", addr)
			return server.New(a.svc, a.logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from YTF_ADDR or config)")

	return cmd
}
