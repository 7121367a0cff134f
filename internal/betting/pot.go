package betting

// BuildPots layers side pots from each seat's cumulative contribution for
// the hand: repeatedly peel off the smallest positive remaining contribution
// across all still-contributing seats as one pot layer, until nothing
// remains. Folded seats' chips stay in whatever layer they contributed to,
// but they are never eligible.
//
// order fixes iteration order (seat order) so ties in "smallest remaining"
// don't introduce nondeterminism; totalContribution and folded are keyed by
// player id.
func BuildPots(order []string, totalContribution map[string]int, folded map[string]bool) []Pot {
	remaining := make(map[string]int, len(order))
	for _, id := range order {
		remaining[id] = totalContribution[id]
	}

	var pots []Pot
	for {
		layer, found := 0, false
		for _, id := range order {
			if rem := remaining[id]; rem > 0 && (!found || rem < layer) {
				layer = rem
				found = true
			}
		}
		if !found {
			break
		}

		contributors := 0
		var eligible []string
		for _, id := range order {
			if remaining[id] > 0 {
				contributors++
				if !folded[id] {
					eligible = append(eligible, id)
				}
			}
		}

		pots = append(pots, Pot{Amount: layer * contributors, Eligible: eligible})

		for _, id := range order {
			if remaining[id] > 0 {
				remaining[id] -= layer
			}
		}
	}
	return pots
}
