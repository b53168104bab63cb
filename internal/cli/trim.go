package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/clipfarm/internal/events"
	"github.com/ytget/clipfarm/internal/ffmpeg"
	"github.com/ytget/clipfarm/internal/model"
	"github.com/ytget/clipfarm/internal/queuefile"
	"github.com/ytget/clipfarm/internal/trim"
)

func newTrimCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim",
		Short: "Cut clips from local videos without re-encoding",
		Example: `  clipfarm trim --task "videos/downloads/clip.mp4,00:00:10,00:00:20"
  clipfarm trim --queue session.yaml`,
		Args: cobra.NoArgs,
		RunE: runTrim,
	}

	cmd.Flags().String("queue", "", "YAML queue file with a list of {video, start, end} tasks")
	cmd.Flags().StringArray("task", nil, "Task as video,start,end (repeatable)")
	cmd.Flags().String("out", "", "Directory for trimmed clips")
	return cmd
}

func runTrim(cmd *cobra.Command, args []string) error {
	settings := settingsFor(cmd)

	tasks, err := collectTasks(cmd)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return trim.ErrEmptyQueue
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = settings.GetTrimmedDirectory()
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	adapter := ffmpeg.New(settings.GetFFmpegPath(), settings.GetFFprobePath())
	if err := adapter.VerifyInstalled(ctx); err != nil {
		return err
	}

	bus := events.NewBus()
	out := newPrinter(cmd.OutOrStdout())
	detach := out.attach(bus)
	defer detach()

	for i, t := range tasks {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d. %s | %s - %s", i+1, shortName(t.Video), t.Start, t.End)))
	}

	summary, err := trim.NewProcessor(bus, adapter, outDir).Run(ctx, tasks)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d trim tasks failed", summary.Failed, summary.Total)
	}
	return nil
}

func collectTasks(cmd *cobra.Command) ([]model.TrimTask, error) {
	var tasks []model.TrimTask

	if path, _ := cmd.Flags().GetString("queue"); path != "" {
		loaded, err := queuefile.Load(path)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, loaded...)
	}

	specs, _ := cmd.Flags().GetStringArray("task")
	for _, spec := range specs {
		task, err := parseTaskFlag(spec)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// parseTaskFlag parses "video,start,end". The video path may itself contain
// commas, so the time codes are taken from the right.
func parseTaskFlag(spec string) (model.TrimTask, error) {
	rest, end, ok := cutLast(spec, ",")
	if !ok {
		return model.TrimTask{}, fmt.Errorf("invalid --task %q: expected video,start,end", spec)
	}
	video, start, ok := cutLast(rest, ",")
	if !ok {
		return model.TrimTask{}, fmt.Errorf("invalid --task %q: expected video,start,end", spec)
	}

	video = strings.TrimSpace(video)
	if video == "" {
		return model.TrimTask{}, fmt.Errorf("invalid --task %q: missing video", spec)
	}
	return model.NewTrimTask(video, strings.TrimSpace(start), strings.TrimSpace(end)), nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
