package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mverdier/greenback/internal/model"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case statePicking:
		body = m.viewPicker()
	case statePreview:
		body = m.viewPreview()
	case stateAnalyzing:
		body = m.viewAnalyzing()
	case stateResults:
		if m.showStats {
			body = m.viewStats()
		} else {
			body = m.viewResults()
		}
	case stateHistory:
		body = m.viewHistory()
	}

	title := titleStyle.Render("Counterfeit Note Detection")
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m Model) viewPicker() string {
	lines := []string{
		subtitleStyle.Render("Analysis of geometric note measurements"),
		"",
		"CSV file to analyze:",
		m.pathInput.View(),
	}
	if m.err != nil {
		lines = append(lines, "", errorStyle.Render(m.err.Error()))
	}
	lines = append(lines, helpStyle.Render("enter: load • esc: quit"))
	return strings.Join(lines, "\n")
}

func (m Model) viewPreview() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d rows\n\n", m.filename, m.table.NumRows())

	b.WriteString(subtitleStyle.Render(strings.Join(m.table.Columns, " | ")))
	b.WriteString("\n")
	for i, row := range m.table.Rows {
		if i >= previewRows {
			fmt.Fprintf(&b, "… %d more rows\n", m.table.NumRows()-previewRows)
			break
		}
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a: analyze • o: open another file • q: quit"))
	return b.String()
}

func (m Model) viewAnalyzing() string {
	return fmt.Sprintf("%s Analyzing %s…", m.spin.View(), m.filename)
}

func (m Model) viewResults() string {
	var b strings.Builder

	stats := m.result.Stats
	fmt.Fprintf(&b, "%s — %d notes: %s, %s\n\n",
		m.filename,
		stats.Total,
		genuineStyle.Render(fmt.Sprintf("%d genuine", stats.GenuineCount)),
		fakeStyle.Render(fmt.Sprintf("%d fake", stats.FakeCount)))

	if stats.Total == 0 {
		b.WriteString(subtitleStyle.Render("No notes in this file."))
		b.WriteString("\n")
	}

	start, end := m.pageBounds()
	for _, pred := range m.result.Predictions[start:end] {
		b.WriteString(renderPredictionCard(pred))
		b.WriteString("\n")
	}

	if stats.Total > m.pageSize {
		b.WriteString("\n")
		b.WriteString(m.pager.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/→: page • s: stats • r: history • o: open file • q: quit"))
	return b.String()
}

// renderPredictionCard renders one verdict line pair in the style of the web
// result cards: status, confidence, and a confidence bar.
func renderPredictionCard(pred model.Prediction) string {
	confidence := pred.Probability * 100

	var status string
	var card lipgloss.Style
	if pred.Label == model.LabelGenuine {
		status = genuineStyle.Render("Genuine ✓")
		card = genuineCardStyle
	} else {
		status = fakeStyle.Render("Fake ✗")
		card = fakeCardStyle
	}

	content := fmt.Sprintf("Note #%d  %s  confidence %.1f%%\n%s",
		pred.ID, status, confidence, confidenceBar(pred))
	return card.Render(content)
}

// confidenceBar renders a fixed-width text gauge of the prediction's
// confidence.
func confidenceBar(pred model.Prediction) string {
	const width = 30
	filled := int(pred.Probability*width + 0.5)
	if filled > width {
		filled = width
	}

	style := genuineStyle
	if pred.Label == model.LabelFake {
		style = fakeStyle
	}
	return style.Render(strings.Repeat("█", filled)) +
		subtitleStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewStats() string {
	stats := m.result.Stats

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		statBoxStyle.Render(fmt.Sprintf("Total\n%d", stats.Total)),
		statBoxStyle.Render(fmt.Sprintf("Genuine\n%d (%.2f%%)", stats.GenuineCount, stats.GenuinePercentage)),
		statBoxStyle.Render(fmt.Sprintf("Fake\n%d (%.2f%%)", stats.FakeCount, stats.FakePercentage)),
	)

	var b strings.Builder
	b.WriteString(boxes)
	b.WriteString("\n\nShare of batch\n")
	fmt.Fprintf(&b, "Genuine %s\n", m.genuineBar.ViewAs(stats.GenuinePercentage/100))
	fmt.Fprintf(&b, "Fake    %s\n", m.fakeBar.ViewAs(stats.FakePercentage/100))

	b.WriteString("\nMean confidence per class\n")
	fmt.Fprintf(&b, "Genuine %s\n", m.genuineBar.ViewAs(meanConfidence(m.result.Predictions, model.LabelGenuine)))
	fmt.Fprintf(&b, "Fake    %s\n", m.fakeBar.ViewAs(meanConfidence(m.result.Predictions, model.LabelFake)))

	b.WriteString(helpStyle.Render("s: back to results • q: quit"))
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString("Recent analyses\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.runs) == 0 {
		b.WriteString(subtitleStyle.Render("No analyses recorded yet."))
		b.WriteString("\n")
	}
	for _, run := range m.runs {
		fmt.Fprintf(&b, "%s  %-24s %4d notes  %s / %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Filename,
			run.Stats.Total,
			genuineStyle.Render(fmt.Sprintf("%.2f%% genuine", run.Stats.GenuinePercentage)),
			fakeStyle.Render(fmt.Sprintf("%.2f%% fake", run.Stats.FakePercentage)))
	}

	b.WriteString(helpStyle.Render("esc: back • q: quit"))
	return b.String()
}

// meanConfidence averages the reported label confidence over predictions of
// the given class, as a fraction in [0,1]. Returns 0 when the class is empty.
func meanConfidence(predictions []model.Prediction, label model.Label) float64 {
	sum := 0.0
	n := 0
	for _, p := range predictions {
		if p.Label == label {
			sum += p.Probability
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
