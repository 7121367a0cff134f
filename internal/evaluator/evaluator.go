// Package evaluator ranks any 5 to 7 cards into a totally ordered HandScore.
//
// The approach is the classic count-ranks / build-a-rank-bitmap technique:
// tally each rank and suit, look for a flush, look for a straight inside the
// flush suit (straight flush) or across all ranks (straight), then fall
// through group counts (quads, boat, trips, two pair, pair, high card) from
// strongest to weakest. It needs no generated lookup tables, so it stays
// correct for 5, 6, or 7 input cards without special-casing table sizes.
package evaluator

import (
	"errors"

	"github.com/lox/holdem-core/internal/deck"
)

// ErrInvalidInput is returned when Evaluate is called with fewer than 5 or
// more than 7 cards. Callers must never trigger this in production use; it
// indicates a bug in the caller.
var ErrInvalidInput = errors.New("evaluator: requires 5 to 7 cards")

// Evaluate ranks the best 5-card hand obtainable from the given 5..7 cards.
func Evaluate(cards []deck.Card) (HandScore, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandScore{}, ErrInvalidInput
	}

	var rankCounts [15]int
	var suitCounts [4]int
	var rankBits uint32

	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		rankBits |= 1 << uint(c.Rank)
	}

	flushSuit := -1
	for s := 0; s < 4; s++ {
		if suitCounts[s] >= 5 {
			flushSuit = s
			break
		}
	}

	if flushSuit != -1 {
		var flushRankBits uint32
		flushRanks := make([]int, 0, 7)
		for _, c := range cards {
			if int(c.Suit) == flushSuit {
				flushRankBits |= 1 << uint(c.Rank)
				flushRanks = append(flushRanks, int(c.Rank))
			}
		}

		if high := findStraight(flushRankBits); high > 0 {
			return HandScore{Category: StraightFlush, Kickers: []int{high}}, nil
		}

		top5 := topN(flushRanks, 5)
		return HandScore{Category: Flush, Kickers: top5}, nil
	}

	var fours, threes, pairs []int
	for rank := 14; rank >= 2; rank-- {
		switch rankCounts[rank] {
		case 4:
			fours = append(fours, rank)
		case 3:
			threes = append(threes, rank)
		case 2:
			pairs = append(pairs, rank)
		}
	}

	if len(fours) > 0 {
		kicker := highestRankExcept(rankCounts, fours[0])
		return HandScore{Category: FourOfAKind, Kickers: []int{fours[0], kicker}}, nil
	}

	if len(threes) > 0 && (len(pairs) > 0 || len(threes) > 1) {
		tripRank := threes[0]
		var pairRank int
		if len(threes) > 1 {
			pairRank = threes[1]
		} else {
			pairRank = pairs[0]
		}
		return HandScore{Category: FullHouse, Kickers: []int{tripRank, pairRank}}, nil
	}

	if high := findStraight(rankBits); high > 0 {
		return HandScore{Category: Straight, Kickers: []int{high}}, nil
	}

	if len(threes) > 0 {
		kickers := highestSingles(rankCounts, 2, threes[0])
		return HandScore{Category: ThreeOfAKind, Kickers: append([]int{threes[0]}, kickers...)}, nil
	}

	if len(pairs) >= 2 {
		kicker := highestRankExcept(rankCounts, pairs[0], pairs[1])
		return HandScore{Category: TwoPair, Kickers: []int{pairs[0], pairs[1], kicker}}, nil
	}

	if len(pairs) == 1 {
		kickers := highestSingles(rankCounts, 3, pairs[0])
		return HandScore{Category: Pair, Kickers: append([]int{pairs[0]}, kickers...)}, nil
	}

	kickers := highestSingles(rankCounts, 5)
	return HandScore{Category: HighCard, Kickers: kickers}, nil
}

// findStraight returns the high card of a 5-consecutive-rank run in bits, or
// 0 if there is none. The wheel (A-2-3-4-5) counts with high card 5.
func findStraight(bits uint32) int {
	const wheel = uint32(1<<14 | 1<<5 | 1<<4 | 1<<3 | 1<<2)
	if bits&wheel == wheel {
		return 5
	}
	for high := 14; high >= 6; high-- {
		mask := uint32(0x1F) << uint(high-4)
		if bits&mask == mask {
			return high
		}
	}
	return 0
}

// highestRankExcept returns the highest rank present at all (count > 0),
// excluding the given ranks. Used where the kicker may come from a rank that
// also has a second copy in hand (e.g. a pair sitting alongside a quad).
func highestRankExcept(rankCounts [15]int, exclude ...int) int {
	for rank := 14; rank >= 2; rank-- {
		if rankCounts[rank] == 0 {
			continue
		}
		excluded := false
		for _, e := range exclude {
			if rank == e {
				excluded = true
				break
			}
		}
		if !excluded {
			return rank
		}
	}
	return 0
}

// highestSingles returns the n highest ranks with exactly one copy in hand,
// excluding the given ranks. Valid wherever the branch it's used from is only
// reached when all remaining cards are singletons (three-of-a-kind, pair,
// high-card — guaranteed by the category cascade above).
func highestSingles(rankCounts [15]int, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for rank := 14; rank >= 2 && len(out) < n; rank-- {
		if rankCounts[rank] != 1 {
			continue
		}
		excluded := false
		for _, e := range exclude {
			if rank == e {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, rank)
		}
	}
	return out
}

// topN returns the n highest values of ranks, descending.
func topN(ranks []int, n int) []int {
	sorted := make([]int, len(ranks))
	copy(sorted, ranks)
	for i := 0; i < len(sorted)-1; i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
