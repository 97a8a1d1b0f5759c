package draftclass

import (
	"fmt"
	"log"
	"sort"
)

// verifyResults checks the developed class and the board against the
// model's guarantees.
func verifyResults(config *Config, players []Player, board []Entry, stats *Stats) error {
	log.Println("verifying results...")

	if len(players) == 0 {
		return fmt.Errorf("no players to verify")
	}

	failures := 0
	for _, p := range players {
		if errs := verifyPlayer(config, p); len(errs) > 0 {
			failures++
			for _, err := range errs {
				log.Printf("invariant failure for %s (%s): %v", p.ID, p.Name, err)
			}
		}
	}

	stats.PlayersVerified = len(players)
	stats.InvariantFailures = failures

	if len(board) > 0 {
		if err := verifyBoardOrdering(board); err != nil {
			log.Printf("board ordering warning: %v", err)
		} else {
			log.Println("board ordering verified")
		}
		verifyBoardAgainstRoster(players, board)
	}

	displayTopProspects(board, config.Verbose)

	if failures > 0 {
		return fmt.Errorf("%d of %d players failed invariant checks", failures, len(players))
	}
	log.Println("result verification completed")
	return nil
}

// verifyPlayer checks one player's snapshot history.
func verifyPlayer(config *Config, p Player) []error {
	var errs []error

	if len(p.Snapshots) == 0 {
		return []error{fmt.Errorf("player has no snapshots")}
	}

	// Seed season plus one snapshot per developed season.
	wantSnapshots := config.DevelopYears + 1
	if len(p.Snapshots) != wantSnapshots {
		errs = append(errs, fmt.Errorf("expected %d snapshots, got %d", wantSnapshots, len(p.Snapshots)))
	}

	prevSeason := 0
	for i, snap := range p.Snapshots {
		if snap.Overall < 0 || snap.Overall > 100 {
			errs = append(errs, fmt.Errorf("snapshot %d overall %d out of [0,100]", i, snap.Overall))
		}
		if snap.Potential < 0 || snap.Potential > 100 {
			errs = append(errs, fmt.Errorf("snapshot %d potential %d out of [0,100]", i, snap.Potential))
		}
		if snap.Potential < snap.Overall {
			errs = append(errs, fmt.Errorf("snapshot %d potential %d below overall %d", i, snap.Potential, snap.Overall))
		}
		if i > 0 && snap.Season <= prevSeason {
			errs = append(errs, fmt.Errorf("snapshot %d season %d not after %d", i, snap.Season, prevSeason))
		}
		prevSeason = snap.Season
	}
	return errs
}

// verifyBoardOrdering checks that rows are ordered by overall then
// potential, with dense ranks.
func verifyBoardOrdering(board []Entry) error {
	for i := 1; i < len(board); i++ {
		prev, cur := board[i-1], board[i]
		if cur.Overall > prev.Overall {
			return fmt.Errorf("row %d overall %d exceeds row %d overall %d", i, cur.Overall, i-1, prev.Overall)
		}
		if cur.Overall == prev.Overall && cur.Potential > prev.Potential {
			return fmt.Errorf("row %d potential %d exceeds row %d potential %d at equal overall", i, cur.Potential, i-1, prev.Potential)
		}

		sameKey := cur.Overall == prev.Overall && cur.Potential == prev.Potential
		switch {
		case sameKey && cur.Rank != prev.Rank:
			return fmt.Errorf("rows %d and %d share ratings but not rank", i-1, i)
		case !sameKey && cur.Rank != prev.Rank+1:
			return fmt.Errorf("row %d rank %d should be %d", i, cur.Rank, prev.Rank+1)
		}
	}
	return nil
}

// verifyBoardAgainstRoster warns when the top board row disagrees with
// the best fetched player.
func verifyBoardAgainstRoster(players []Player, board []Entry) {
	best := players[0]
	for _, p := range players[1:] {
		curBest := best.Snapshots[len(best.Snapshots)-1]
		cur := p.Snapshots[len(p.Snapshots)-1]
		if cur.Overall > curBest.Overall ||
			(cur.Overall == curBest.Overall && cur.Potential > curBest.Potential) {
			best = p
		}
	}

	top := board[0]
	bestSnap := best.Snapshots[len(best.Snapshots)-1]
	if top.Overall != bestSnap.Overall || top.Potential != bestSnap.Potential {
		log.Printf("board/roster mismatch: top row %d/%d, best fetched player %s has %d/%d",
			top.Overall, top.Potential, best.ID, bestSnap.Overall, bestSnap.Potential)
		return
	}
	log.Println("board top row matches roster")
}

// displayTopProspects shows the head of the board.
func displayTopProspects(board []Entry, verbose bool) {
	topN := 10
	if len(board) < topN {
		topN = len(board)
	}

	log.Printf("top %d prospects:", topN)
	for i := 0; i < topN; i++ {
		e := board[i]
		log.Printf("   %d. %s (%s) - overall %d, potential %d", e.Rank, e.Name, e.Pos, e.Overall, e.Potential)
	}

	if verbose && len(board) > 0 {
		overalls := make([]int, len(board))
		for i, e := range board {
			overalls[i] = e.Overall
		}
		sort.Ints(overalls)

		sum := 0
		for _, v := range overalls {
			sum += v
		}
		log.Printf("board overall spread: min %d, median %d, max %d, mean %.1f",
			overalls[0], overalls[len(overalls)/2], overalls[len(overalls)-1],
			float64(sum)/float64(len(overalls)))
	}
}
