package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"simtest/internal/domain"
)

// Viewer displays stored run results
type Viewer interface {
	View(report *domain.RunReport) error
}

// FailureViewer lists failed cases of the last run in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View opens the TUI over the failures in report
func (fv *FailureViewer) View(report *domain.RunReport) error {
	failures := report.Failures()
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, failure := range failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, failure.Name), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" %s on %s: %d of %d cases failed | ↑↓ navigate, → details, ← back, Ctrl+C exit ",
			report.Meta.Timestamp, report.Meta.Circuit, len(failures), report.Meta.TotalCases))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			detailsView.SetText(FormatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// FormatFailureDetails formats a failed case using tview color tags
func FormatFailureDetails(c domain.CaseRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(c.Name))
	fmt.Fprintf(&b, "[cyan]Source: %s[white]\n", tview.Escape(c.Source))
	fmt.Fprintf(&b, "[cyan]Artifact: %s[white]\n\n", tview.Escape(c.Artifact))

	if c.Status == domain.StatusError {
		fmt.Fprintf(&b, "[yellow]Execution error:[white]\n%s\n", tview.Escape(c.Error))
		return b.String()
	}

	if !c.Halted {
		fmt.Fprintf(&b, "[yellow]Simulator never reached the halt pin[white]\n\n")
	}

	if c.ExpectedOutput != nil {
		mark := "[green]OK[white]"
		if !c.OutputOK {
			mark = "[red]FAIL[white]"
		}
		fmt.Fprintf(&b, "[yellow]Output:[white] %s\n", mark)
		fmt.Fprintf(&b, "  expected: %s\n", tview.Escape(*c.ExpectedOutput))
		fmt.Fprintf(&b, "  actual:   %s\n\n", tview.Escape(c.ActualOutput))
	}

	if c.SpeedLimit != nil {
		mark := "[green]OK[white]"
		if !c.SpeedOK {
			mark = "[red]FAIL[white]"
		}
		actual := "not reported"
		if c.ActualSpeed != nil {
			actual = fmt.Sprintf("%d", *c.ActualSpeed)
		}
		fmt.Fprintf(&b, "[yellow]Speed:[white] %s\n", mark)
		fmt.Fprintf(&b, "  limit:  %d\n", *c.SpeedLimit)
		fmt.Fprintf(&b, "  actual: %s\n", actual)
	}

	return b.String()
}
