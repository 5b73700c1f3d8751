package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/minicasino/internal/deck"
	"github.com/lox/minicasino/internal/statistics"
	"github.com/lox/minicasino/internal/wager"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	hiddenCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

// renderHidden renders cards with the first n face down.
func renderHidden(cards []deck.Card, n int) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if i < n {
			parts[i] = hiddenCardStyle.Render("??")
		} else {
			parts[i] = renderCard(c)
		}
	}
	return strings.Join(parts, " ")
}

func renderSettlement(s *wager.Settlement) string {
	style := lossStyle
	switch {
	case s.Won():
		style = winStyle
	case s.Net() == 0:
		style = pushStyle
	}
	return fmt.Sprintf("%s %s",
		style.Render(s.Outcome),
		mutedStyle.Render(fmt.Sprintf("(staked %d, paid %d, net %+d)", s.Staked, s.Credited, s.Net())))
}

func renderStats(r *statistics.Recorder) string {
	snap := r.Snapshot()
	var b strings.Builder
	b.WriteString(headerStyle.Render("Statistics") + "\n")
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Games played:"), snap.GamesPlayed)
	fmt.Fprintf(&b, "  %s %d (%.1f%%)\n", labelStyle.Render("Wins:"), snap.TotalWins, snap.WinRate()*100)
	fmt.Fprintf(&b, "  %s %d (best %d)\n", labelStyle.Render("Streak:"), snap.CurrentStreak, snap.BestStreak)
	fmt.Fprintf(&b, "  %s %+d\n", labelStyle.Render("Net:"), snap.TotalNet)
	if snap.HasFavourite {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Favourite:"), snap.Favourite.Label())
	}
	for _, g := range wager.Games {
		if n := snap.PlayCounts[g]; n > 0 {
			fmt.Fprintf(&b, "  %-10s %d\n", g.Label(), n)
		}
	}
	return b.String()
}

func renderHistory(r *statistics.Recorder) string {
	h := r.History()
	if len(h) == 0 {
		return mutedStyle.Render("No rounds played yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent rounds") + "\n")
	for _, e := range h {
		net := lossStyle.Render(fmt.Sprintf("%+d", e.Net))
		if e.Won {
			net = winStyle.Render(fmt.Sprintf("%+d", e.Net))
		}
		fmt.Fprintf(&b, "  %s  %-10s %-28s %s\n", e.At.Format("15:04:05"), e.Game.Label(), e.Outcome, net)
	}
	return b.String()
}
