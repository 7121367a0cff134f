package holdem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/holdem-core/internal/deck"
	"github.com/lox/holdem-core/internal/evaluator"
)

// computeShowdown awards every pot and populates ns.Showdown. Called only
// once the hand is settled (river closed, or ≤1 non-folded seat remains);
// ns is the in-flight clone already owned by the caller.
func computeShowdown(ns *State) {
	var contenders []string
	for _, seat := range ns.Seats {
		if seat.InHand && !seat.Folded {
			contenders = append(contenders, seat.PlayerID)
		}
	}

	scores := map[string]evaluator.HandScore{}
	if len(contenders) > 1 {
		for _, pid := range contenders {
			seat := ns.seatByID(pid)
			cards := append(append([]deck.Card{}, seat.HoleCards...), ns.Board...)
			sc, err := evaluator.Evaluate(cards)
			if err == nil {
				scores[pid] = sc
			}
		}
	}

	rebuildPots(ns)

	awarded := map[string]int{}
	winnersSet := map[string]bool{}
	for _, pot := range ns.Pots {
		if len(pot.Eligible) == 0 || pot.Amount == 0 {
			continue
		}

		var potWinners []string
		if len(contenders) <= 1 {
			potWinners = append(potWinners, contenders...)
		} else {
			var best evaluator.HandScore
			for i, pid := range pot.Eligible {
				sc := scores[pid]
				switch {
				case i == 0:
					best = sc
					potWinners = []string{pid}
				case sc.Compare(best) > 0:
					best = sc
					potWinners = []string{pid}
				case sc.Compare(best) == 0:
					potWinners = append(potWinners, pid)
				}
			}
		}
		if len(potWinners) == 0 {
			continue
		}

		sort.Slice(potWinners, func(i, j int) bool {
			return ns.seatIndexOf(potWinners[i]) < ns.seatIndexOf(potWinners[j])
		})

		k := len(potWinners)
		base := pot.Amount / k
		remainder := pot.Amount % k
		for i, pid := range potWinners {
			amt := base
			if i < remainder {
				amt++
			}
			awarded[pid] += amt
			winnersSet[pid] = true
		}
	}

	for pid, amt := range awarded {
		if seat := ns.seatByID(pid); seat != nil {
			seat.Stack += amt
		}
	}

	var winners []string
	for _, seat := range ns.Seats {
		if winnersSet[seat.PlayerID] {
			winners = append(winners, seat.PlayerID)
		}
	}

	summary := buildSummary(ns, winners, awarded)
	ns.Showdown = &ShowdownResult{Winners: winners, Awarded: awarded, Scores: scores, Summary: summary}
	ns.ActionLog = append(ns.ActionLog, summary)
}

func buildSummary(ns *State, winners []string, awarded map[string]int) string {
	if len(winners) == 0 {
		return fmt.Sprintf("hand %d: no pot awarded", ns.HandNumber)
	}
	parts := make([]string, 0, len(winners))
	for _, pid := range winners {
		parts = append(parts, fmt.Sprintf("%s +%d", pid, awarded[pid]))
	}
	return fmt.Sprintf("hand %d: %s", ns.HandNumber, strings.Join(parts, ", "))
}
