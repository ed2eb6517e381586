package generate

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"ankivoice/internal/tasklist"
	"ankivoice/internal/textutil"
)

// previewRunes bounds the sentence echo printed per task.
const previewRunes = 60

// Reporter receives batch progress. Calls arrive from the goroutine running
// Generator.Run.
type Reporter interface {
	BatchStarted(total int, mediaDir string)
	TaskStarted(index, total int, task tasklist.Task)
	TaskFinished(result Result)
	BatchFinished(summary Summary)
}

type nopReporter struct{}

func (nopReporter) BatchStarted(int, string)            {}
func (nopReporter) TaskStarted(int, int, tasklist.Task) {}
func (nopReporter) TaskFinished(Result)                 {}
func (nopReporter) BatchFinished(Summary)               {}

// ConsoleReporter prints one block of lines per task.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter writes progress lines to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) BatchStarted(total int, mediaDir string) {
	fmt.Fprintf(r.out, "Generating %d audio files in: %s\n", total, mediaDir)
}

func (r *ConsoleReporter) TaskStarted(index, total int, task tasklist.Task) {
	fmt.Fprintf(r.out, "[%d/%d] Generating: %s\n", index+1, total, task.Filename)
	fmt.Fprintf(r.out, "Text: %s\n", textutil.Truncate(task.Text, previewRunes))
}

func (r *ConsoleReporter) TaskFinished(result Result) {
	if result.OK() {
		fmt.Fprintf(r.out, "✓ Successfully generated: %s (%s)\n", result.Task.Filename, describeAudio(result))
		return
	}
	fmt.Fprintf(r.out, "✗ Failed to generate: %s (Error code: %d): %v\n", result.Task.Filename, result.Code, result.Err)
}

func (r *ConsoleReporter) BatchFinished(summary Summary) {
	printCompletion(r.out, summary)
}

// BarReporter renders a single progress bar and prints failures above it.
type BarReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBarReporter draws a progress bar on out, which should be a terminal.
func NewBarReporter(out io.Writer) *BarReporter {
	return &BarReporter{out: out}
}

func (r *BarReporter) BatchStarted(total int, mediaDir string) {
	fmt.Fprintf(r.out, "Generating %d audio files in: %s\n", total, mediaDir)
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("synthesizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) TaskStarted(_, _ int, task tasklist.Task) {
	if r.bar != nil {
		r.bar.Describe(task.Filename)
	}
}

func (r *BarReporter) TaskFinished(result Result) {
	if !result.OK() && r.bar != nil {
		_ = r.bar.Clear()
		fmt.Fprintf(r.out, "✗ Failed to generate: %s (Error code: %d): %v\n", result.Task.Filename, result.Code, result.Err)
	}
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) BatchFinished(summary Summary) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	printCompletion(r.out, summary)
}

func describeAudio(result Result) string {
	size := humanize.Bytes(uint64(result.Bytes))
	if result.Duration <= 0 {
		return size
	}
	return fmt.Sprintf("%s, %.1fs", size, result.Duration.Seconds())
}

func printCompletion(out io.Writer, summary Summary) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Audio generation complete! %d succeeded, %d failed.\n", summary.Succeeded, summary.Failed)
	fmt.Fprintf(out, "Files generated in: %s\n", summary.MediaDir)
	fmt.Fprintln(out, "Run Tools > Check Media in Anki to refresh the media database.")
}
