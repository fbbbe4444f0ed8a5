package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many simulations have finished and how they went
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	out   io.Writer
	total int
}

// NewProgressBar draws a bar for count cases on stderr
func NewProgressBar(count int) *ProgressBar {
	return NewProgressBarTo(os.Stderr, count)
}

// NewProgressBarTo draws the bar on out. Stdout carries the verdict blocks,
// so callers normally keep the bar on another stream.
func NewProgressBarTo(out io.Writer, count int) *ProgressBar {
	p := &ProgressBar{out: out, total: count}
	p.bar = progressbar.NewOptions(count,
		progressbar.OptionSetDescription(p.describe(0, 0)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("="),
			SaucerHead:    color.CyanString(">"),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

func (p *ProgressBar) describe(passed, failed int) string {
	return fmt.Sprintf("Simulating %d/%d ", passed+failed, p.total) +
		color.GreenString("ok %d", passed) + " " +
		color.RedString("fail %d", failed)
}

// Update moves the bar to passed+failed finished cases
func (p *ProgressBar) Update(passed, failed int) {
	p.bar.Describe(p.describe(passed, failed))
	p.bar.Set(passed + failed)
}

// Finish completes the bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
