package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/envlens/envlens/internal/envio"
	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/tui"
	"github.com/envlens/envlens/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Follow a file and print semantic changes",
	Long: `Watch FILE for external modification and print the semantic diff against
the previously seen content on every change. Ctrl-C stops watching.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	raw, ref, err := envio.Read(args[0])
	if err != nil {
		return err
	}
	baseline := envline.Parse(raw)

	w, err := watch.New()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(ref.AbsolutePath); err != nil {
		return fmt.Errorf("watch %s: %w", ref.AbsolutePath, err)
	}
	changes := w.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s watching %s\n", tui.Muted("…"), ref.AbsolutePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			raw, _, err := envio.Read(ref.AbsolutePath)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", tui.Error("!"), err)
				continue
			}
			current := envline.Parse(raw)
			diff := envline.Diff(baseline, current)
			if len(diff) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiff(diff))
			}
			baseline = current
		}
	}
}
