package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Follow and report video face detection progress",
}

var facesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the progress of the running video face detection job",
	Long: `Connect to the server's progress stream and render the active video face
detection job as a progress bar. Runs until interrupted, or until the current
job finishes when --once is set.`,
	Args: cobra.NoArgs,
	RunE: runFacesWatch,
}

var facesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the progress of the running video face detection job once",
	Args:  cobra.NoArgs,
	RunE:  runFacesStatus,
}

var facesReportCmd = &cobra.Command{
	Use:   "report ASSET_ID PROCESSED TOTAL",
	Short: "Report the progress of a video face detection job",
	Long: `Report progress for a video asset. Reporting PROCESSED >= TOTAL marks the
job as finished and clears the progress.`,
	Args: cobra.ExactArgs(3),
	RunE: runFacesReport,
}

var facesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the video face detection progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient(cmd, true)
		if err != nil {
			return err
		}
		if err := client.ResetFaceProgress(context.Background()); err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(facesCmd)
	addServerFlag(facesCmd)

	facesCmd.AddCommand(facesWatchCmd)
	facesCmd.AddCommand(facesStatusCmd)
	facesCmd.AddCommand(facesReportCmd)
	facesCmd.AddCommand(facesResetCmd)

	facesWatchCmd.Flags().Bool("once", false, "Exit when the current job finishes")
	facesStatusCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
}

// progressRenderer draws one progress bar per job. It is used as a
// faceprogress.Store subscriber.
type progressRenderer struct {
	out     io.Writer
	bar     *progressbar.ProgressBar
	assetID string
	total   int

	// finished is closed after an active job ends, when non-nil.
	finished chan struct{}
	active   bool
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{out: out}
}

func (r *progressRenderer) observe(p *faceprogress.Progress) {
	if p == nil {
		r.finishBar()
		if r.active {
			r.active = false
			fmt.Fprintln(r.out, "Face detection finished")
			if r.finished != nil {
				close(r.finished)
				r.finished = nil
			}
		} else {
			fmt.Fprintln(r.out, "No active face detection job")
		}
		return
	}

	if r.bar == nil || p.AssetID != r.assetID || p.Total != r.total {
		r.finishBar()
		r.bar = progressbar.NewOptions(p.Total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription("Asset "+p.AssetID),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("frames"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
		r.assetID = p.AssetID
		r.total = p.Total
	}
	r.active = true
	_ = r.bar.Set(p.Processed)
}

func (r *progressRenderer) finishBar() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Exit()
	fmt.Fprintln(r.out)
	r.bar = nil
	r.assetID = ""
	r.total = 0
}

func runFacesWatch(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient(cmd, false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := newProgressRenderer(cmd.OutOrStdout())
	if mustGetBool(cmd, "once") {
		finished := make(chan struct{})
		renderer.finished = finished
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-finished:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	store := faceprogress.NewStore()
	unsubscribe := store.Subscribe(renderer.observe)
	defer unsubscribe()

	if err := client.FollowFaceProgress(ctx, store); err != nil {
		return fmt.Errorf("failed to follow progress: %w", err)
	}
	return nil
}

func runFacesStatus(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient(cmd, true)
	if err != nil {
		return err
	}

	p, err := client.GetFaceProgress(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	return writeFaceStatus(cmd.OutOrStdout(), mustGetString(cmd, "format"), p)
}

// writeFaceStatus prints p as a line of text, or as JSON or YAML where idle is null.
func writeFaceStatus(w io.Writer, format string, p *faceprogress.Progress) error {
	if format != "text" {
		return writeFormatted(w, format, p)
	}
	if p == nil {
		fmt.Fprintln(w, "No active face detection job")
		return nil
	}
	fmt.Fprintf(w, "Asset %s: %d/%d frames\n", p.AssetID, p.Processed, p.Total)
	return nil
}

func runFacesReport(cmd *cobra.Command, args []string) error {
	processed, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid PROCESSED %q: %w", args[1], err)
	}
	total, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid TOTAL %q: %w", args[2], err)
	}

	client, err := newAPIClient(cmd, true)
	if err != nil {
		return err
	}

	p := faceprogress.Progress{AssetID: args[0], Processed: processed, Total: total}
	if err := client.ReportFaceProgress(context.Background(), p); err != nil {
		return fmt.Errorf("failed to report progress: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reported %s: %d/%d\n", p.AssetID, p.Processed, p.Total)
	return nil
}
