package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// runBatchUI drives the bubbletea progress view for a batch run. Each
// result is passed to report as it arrives; the UI quits after total
// results or on ctrl+c.
func runBatchUI(total int, results <-chan batchResult, report func(batchResult)) error {
	m := batchModel{total: total, results: results, report: report}
	_, err := tea.NewProgram(m).Run()
	return err
}

// batchResultMsg carries one finished job into the model.
type batchResultMsg batchResult

// waitForResult blocks on the results channel.
func waitForResult(results <-chan batchResult) tea.Cmd {
	return func() tea.Msg {
		return batchResultMsg(<-results)
	}
}

var (
	batchOKStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	batchFailStyle = lipgloss.NewStyle().Foreground(colorRed)
	batchBarStyle  = lipgloss.NewStyle().Foreground(colorCyan)
)

// batchModel is the bubbletea model for batch progress.
type batchModel struct {
	total   int
	done    int
	failed  int
	recent  []batchResult
	results <-chan batchResult
	report  func(batchResult)
}

func (m batchModel) Init() tea.Cmd {
	return waitForResult(m.results)
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case batchResultMsg:
		r := batchResult(msg)
		m.report(r)
		m.done++
		if r.Err != nil {
			m.failed++
		}
		m.recent = append(m.recent, r)
		if len(m.recent) > 8 {
			m.recent = m.recent[1:]
		}
		if m.done >= m.total {
			return m, tea.Quit
		}
		return m, waitForResult(m.results)
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering panels"))
	b.WriteString("\n\n")
	b.WriteString("  " + progressBar(m.done, m.total, 30))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	if m.failed > 0 {
		b.WriteString("  " + batchFailStyle.Render(fmt.Sprintf("%d failed", m.failed)))
	}
	b.WriteString("\n\n")

	for _, r := range m.recent {
		icon := batchOKStyle.Render(iconSuccess)
		detail := StyleDim.Render(r.Duration.Round(time.Millisecond).String())
		if r.Err != nil {
			icon = batchFailStyle.Render(iconError)
			detail = batchFailStyle.Render(r.Err.Error())
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", icon, StyleValue.Render(r.Job.Spec), detail)
	}

	return b.String()
}

// progressBar renders a fixed-width unicode progress bar.
func progressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return batchBarStyle.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
}
