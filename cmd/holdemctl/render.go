package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/holdem"
)

func renderCard(c deck.Card) string {
	if c.Suit.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func renderPublicView(tableID string, pv holdem.PublicView) string {
	var b strings.Builder
	fmt.Fprintln(&b, HeaderStyle.Render(fmt.Sprintf(" %s — hand %d, %s ", tableID, pv.HandNumber, pv.Phase)))
	if len(pv.Board) > 0 {
		fmt.Fprintln(&b, "Board:", renderCards(pv.Board))
	}
	for _, seat := range pv.Seats {
		status := ""
		switch {
		case seat.Folded:
			status = "(folded)"
		case seat.AllIn:
			status = "(all-in)"
		case seat.IsDealer:
			status = "(dealer)"
		}
		line := fmt.Sprintf("  %-10s stack=%-6d %s", seat.PlayerID, seat.Stack, status)
		if seat.PlayerID == pv.ActivePlayerID {
			line = ActionsStyle.Render(line + " <- to act")
		} else {
			line = PlayerInfoStyle.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	for i, pot := range pv.Pots {
		fmt.Fprintf(&b, "  pot %d: %d (eligible: %s)\n", i+1, pot.Amount, strings.Join(pot.Eligible, ","))
	}
	return b.String()
}

func renderPlayerView(view holdem.PlayerView) string {
	var b strings.Builder
	fmt.Fprintln(&b, HandInfoStyle.Render("Your hole cards: "+renderCards(view.HoleCards)))
	if la := view.AvailableActions; la != nil {
		var options []string
		if la.CanFold {
			options = append(options, "fold")
		}
		if la.CanCheck {
			options = append(options, "check")
		}
		if la.CanCall {
			options = append(options, fmt.Sprintf("call %d", la.CallAmount))
		}
		if la.CanBet {
			options = append(options, fmt.Sprintf("bet <amount>>=%d", la.MinBet))
		}
		if la.CanRaise {
			options = append(options, fmt.Sprintf("raise <amount>>=%d", la.MinRaiseTo))
		}
		if la.CanAllIn {
			options = append(options, "allin")
		}
		fmt.Fprintln(&b, ActionsStyle.Render("Available: "+strings.Join(options, ", ")))
	}
	return b.String()
}
