package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/ytf/internal/aggregator"
	"github.com/gauthierbraillon/ytf/internal/display"
	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/service"
	"github.com/gauthierbraillon/ytf/internal/store"
	"github.com/gauthierbraillon/ytf/internal/video"
	"github.com/gauthierbraillon/ytf/pkg/browser"
)

// listFlags are shared by the list subcommands.
type listFlags struct {
	emoji    string
	platform string
	limit    int
	newest   bool
}

func (f *listFlags) register(cmd *cobra.Command, withEmoji bool) {
	if withEmoji {
		cmd.Flags().StringVarP(&f.emoji, "emoji", "e", "", "Filter by reaction (emoji or name, e.g. great)")
	}
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "", "Filter by platform (youtube, tiktok, instagram, other)")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "Maximum number of entries to display (0 for all)")
	cmd.Flags().BoolVarP(&f.newest, "newest", "n", false, "Show newest entries first")
}

func (f *listFlags) options() (aggregator.FeedOptions, error) {
	opts := aggregator.FeedOptions{Limit: f.limit, NewestFirst: f.newest}
	if f.limit < 0 {
		return opts, fmt.Errorf("invalid limit %d: must not be negative", f.limit)
	}
	if f.emoji != "" {
		e, err := entry.ParseEmoji(f.emoji)
		if err != nil {
			return opts, err
		}
		opts.Emoji = e
	}
	platforms, err := video.ParsePlatforms(f.platform)
	if err != nil {
		return opts, err
	}
	opts.Platforms = platforms
	return opts, nil
}

// offsetFlag returns the --at value, or nil when the flag was not given.
func offsetFlag(cmd *cobra.Command, at int) (*int, error) {
	if !cmd.Flags().Changed("at") {
		return nil, nil
	}
	if at < 0 {
		return nil, fmt.Errorf("invalid offset %d: must not be negative", at)
	}
	return &at, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", arg)
	}
	return id, nil
}

// openVideo opens the video at offset in the browser, preferring the embed
// player. When no browser can be started the URL is printed instead.
func openVideo(cmd *cobra.Command, rawURL string, offset int) error {
	p, err := service.PreviewVideo(rawURL, &offset)
	if err != nil {
		return err
	}
	target := p.OpenURL
	if p.EmbedURL != "" {
		target = p.EmbedURL
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Opening %s at %s...\n", p.Title, video.FormatOffset(offset))
	if err := browser.Open(target); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", target)
	}
	return nil
}

// notSaved reports an entry that exists in memory only.
func notSaved(kind string, id int64, err error) error {
	return fmt.Errorf("%s #%d was recorded but could not be saved: %w", kind, id, err)
}

// newFeedbackCmd creates the feedback subcommand.
func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record and review reactions to video moments",
	}

	cmd.AddCommand(newFeedbackAddCmd())
	cmd.AddCommand(newFeedbackListCmd())
	cmd.AddCommand(newFeedbackRemoveCmd())
	cmd.AddCommand(newFeedbackOpenCmd())

	return cmd
}

func newFeedbackAddCmd() *cobra.Command {
	var emoji, comment, title string
	var at int

	cmd := &cobra.Command{
		Use:   "add <video-url>",
		Short: "React to a moment in a video",
		Long: "Record an emoji reaction to a moment in a video. Reactions: " +
			"🔥 great, 💡 insightful, ❌ useless, 🤔 confusing, 💤 boring. " +
			"Without --at the moment comes from the link's t= parameter.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := offsetFlag(cmd, at)
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.svc.SubmitFeedback(service.FeedbackInput{
				VideoURL: args[0],
				Title:    title,
				At:       offset,
				Emoji:    emoji,
				Comment:  comment,
			})
			switch {
			case store.IsPersistence(err):
				fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatFeedback(f))
				return notSaved("feedback", f.ID, err)
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Feedback #%d saved.\n\n", f.ID)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatFeedback(f))
			return nil
		},
	}

	cmd.Flags().StringVarP(&emoji, "emoji", "e", "", "Reaction (emoji or name, e.g. great)")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Optional comment")
	cmd.Flags().StringVar(&title, "title", "", "Video title (derived from the link when empty)")
	cmd.Flags().IntVarP(&at, "at", "a", 0, "Moment in the video, in seconds")

	return cmd
}

func newFeedbackListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded reactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatFeedbackList(a.svc.Feedback(opts)))
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newFeedbackRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			found, err := a.svc.RemoveFeedback(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No feedback with id %d.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Feedback #%d removed.\n", id)
			return nil
		},
	}
}

func newFeedbackOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open the video at the moment of a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			f, found := a.svc.FindFeedback(id)
			if !found {
				return fmt.Errorf("no feedback with id %d", id)
			}
			return openVideo(cmd, f.VideoURL, f.VideoOffsetSeconds)
		},
	}
}

// newLaterCmd creates the later subcommand.
func newLaterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "later",
		Aliases: []string{"watch-later"},
		Short:   "Save video moments to watch later",
	}

	cmd.AddCommand(newLaterAddCmd())
	cmd.AddCommand(newLaterListCmd())
	cmd.AddCommand(newLaterRemoveCmd())
	cmd.AddCommand(newLaterOpenCmd())

	return cmd
}

func newLaterAddCmd() *cobra.Command {
	var note, title string
	var at int

	cmd := &cobra.Command{
		Use:   "add <video-url>",
		Short: "Save a moment in a video for later",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := offsetFlag(cmd, at)
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := a.svc.SaveForLater(service.WatchLaterInput{
				VideoURL: args[0],
				Title:    title,
				At:       offset,
				Note:     note,
			})
			switch {
			case store.IsPersistence(err):
				fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatWatchLater(w))
				return notSaved("watch later item", w.ID, err)
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved for later as #%d.\n\n", w.ID)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatWatchLater(w))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Optional note (default \""+entry.DefaultNote+"\")")
	cmd.Flags().StringVar(&title, "title", "", "Video title (derived from the link when empty)")
	cmd.Flags().IntVarP(&at, "at", "a", 0, "Moment in the video, in seconds")

	return cmd
}

func newLaterListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatWatchLaterList(a.svc.WatchLater(opts)))
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

func newLaterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a saved video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			found, err := a.svc.RemoveWatchLater(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No watch later item with id %d.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watch later item #%d removed.\n", id)
			return nil
		},
	}
}

func newLaterOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a saved video at its moment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			w, found := a.svc.FindWatchLater(id)
			if !found {
				return fmt.Errorf("no watch later item with id %d", id)
			}
			return openVideo(cmd, w.VideoURL, w.VideoOffsetSeconds)
		},
	}
}

// newStatsCmd creates the stats subcommand.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show reaction counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatStats(a.svc.Stats()))
			return nil
		},
	}
}
