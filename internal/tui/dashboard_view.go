package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
)

const (
	placeholderValue = "—"
	minCardWidth     = 30
	cardGap          = 2

	footerNote = "Note: 'CO₂ in atmosphere' is derived from ppm using a standard conversion. " +
		"Budget math uses annual global emissions (OWID) and is a simplified tracker."
)

// card is one titled metric tile.
type card struct {
	title    string
	value    string
	sub      string
	critical bool
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n")

	if m.showErr && m.err != nil {
		b.WriteString(m.renderError())
		b.WriteString("\n")
	}

	b.WriteString(SubtleStyle.Width(m.width).Render(footerNote))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *DashboardModel) renderHeader() string {
	status := m.status
	switch {
	case m.Refreshing():
		status = m.spinner.View() + " " + status
	case m.err != nil:
		status = CriticalStyle.Render(status)
	case m.metrics != nil:
		status = OKStyle.Render(status)
	default:
		status = LabelStyle.Render(status)
	}
	return TitleStyle.Render("CO₂ Tracker") + "   " + status
}

func (m *DashboardModel) renderControls() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Budget: "))
	b.WriteString(ValueStyle.Render(m.scenario.Label()))
	b.WriteString("    ")
	b.WriteString(LabelStyle.Render("Budget start year: "))
	b.WriteString(ValueStyle.Render(strconv.Itoa(m.startYear)))
	b.WriteString("    ")
	if m.Refreshing() {
		b.WriteString(DisabledButtonStyle.Render("Refreshing…"))
	} else {
		b.WriteString(ButtonStyle.Render("Refresh (r)"))
	}
	return b.String()
}

func (m *DashboardModel) renderCards() string {
	cards := m.cards()

	width := (m.width - cardGap) / 2
	if width < minCardWidth {
		width = minCardWidth
	}

	rows := make([]string, 0, (len(cards)+1)/2)
	for i := 0; i < len(cards); i += 2 {
		left := renderCard(cards[i], width)
		if i+1 >= len(cards) {
			rows = append(rows, left)
			continue
		}
		right := renderCard(cards[i+1], width)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", cardGap), right))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c card, width int) string {
	value := ValueStyle.Render(c.value)
	if c.critical {
		value = CriticalStyle.Render(c.value)
	}
	inner := width - 4
	content := HeaderStyle.Render(c.title) + "\n" + value + "\n" + SubtleStyle.Width(inner).Render(c.sub)
	return CardStyle.Width(width - 2).Render(content)
}

func (m *DashboardModel) cards() []card {
	titles := []string{
		"Latest CO₂ (ppm)",
		"CO₂ in atmosphere (GtCO₂)",
		"Above pre-industrial (ppm)",
		"Estimated budget used (GtCO₂)",
		"Estimated budget remaining (GtCO₂)",
	}

	if m.metrics == nil {
		out := make([]card, len(titles))
		for i, t := range titles {
			out[i] = card{title: t, value: placeholderValue}
		}
		return out
	}

	mt := m.metrics
	return []card{
		{
			title: titles[0],
			value: carbon.FormatPPM(mt.LatestPPM),
			sub:   "NOAA Mauna Loa daily mean, latest valid date: " + mt.Date.Format("2006-01-02"),
		},
		{
			title: titles[1],
			value: carbon.FormatGt(mt.AtmosphericMass, 0),
			sub:   fmt.Sprintf("Derived: %.2f × %.5f GtCO₂/ppm", mt.LatestPPM, carbon.PPMToGtCO2),
		},
		{
			title: titles[2],
			value: carbon.FormatPPM(mt.AboveBaseline),
			sub:   fmt.Sprintf("Using %.0f ppm as pre-industrial reference", carbon.PreindustrialPPM),
		},
		{
			title: titles[3],
			value: carbon.FormatGt(mt.BudgetUsed, 1),
			sub:   fmt.Sprintf("Sum of annual global emissions from %d–%d (OWID)", mt.StartYear, mt.EndYear),
		},
		{
			title:    titles[4],
			value:    carbon.FormatGt(mt.BudgetRemaining, 1),
			sub:      "Negative means overshoot (would require net-negative emissions / removals)",
			critical: mt.Overshoot(),
		},
	}
}

func (m *DashboardModel) renderError() string {
	content := CriticalStyle.Render("Refresh failed") + "\n" +
		m.err.Error() + "\n" +
		LabelStyle.Render("esc to dismiss")
	return ErrorBoxStyle.Width(m.width - 2).Render(content)
}
