package tcr

import "sort"

// OnBlockFinalized implements spec.md §4.1 on_block_finalized(now): the
// commit pass over Applications, the resolve pass over Challenges, and the
// single sorted ChangeMembersSorted notification. It never returns an
// error and never panics; every sub-failure is absorbed, per spec.md §7.
func (e *Engine) OnBlockFinalized(now uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var newMembers, oldMembers []AccountID

	// Commit pass: Applications matured past FinalizeApplicationPeriod
	// move, unchanged, into Members. Sorted by account identifier so
	// finalization never depends on map iteration order.
	for _, candidate := range e.sortedKeys(e.applications) {
		app := e.applications[candidate]
		if now-app.CreatedBlock < e.cfg.FinalizeApplicationPeriod {
			continue
		}
		delete(e.applications, candidate)
		e.members[candidate] = app
		newMembers = append(newMembers, candidate)
		e.sink.Emit(ApplicationPassed{Who: candidate})
	}

	// Resolve pass: Challenges matured past FinalizeChallengePeriod are
	// resolved, each possibly appending to newMembers/oldMembers.
	for _, target := range e.sortedKeys(e.challenges) {
		app := e.challenges[target]
		if now-app.ChallengedBlock < e.cfg.FinalizeChallengePeriod {
			continue
		}
		in, out := e.resolveChallenge(target, app)
		if in {
			newMembers = append(newMembers, target)
		}
		if out {
			oldMembers = append(oldMembers, target)
		}
	}

	if len(newMembers) == 0 && len(oldMembers) == 0 {
		return
	}

	sort.Slice(newMembers, func(i, j int) bool { return newMembers[i] < newMembers[j] })
	sort.Slice(oldMembers, func(i, j int) bool { return oldMembers[i] < oldMembers[j] })

	full := e.sortedKeys(e.members)
	e.subs.ChangeMembersSorted(newMembers, oldMembers, full)
}

// resolveChallenge resolves a single matured Challenges record, returning
// whether the candidate ended up a member (in) and whether it was removed
// from membership (out). Exactly one of the two bookkeeping branches
// (accept/reject) runs; both always delete the Challenges entry.
func (e *Engine) resolveChallenge(target AccountID, app Application) (in, out bool) {
	supporting := app.CandidateDeposit + app.VotesFor
	opposing := app.ChallengerDeposit + app.VotesAgainst

	var losers, winners []Stake
	accepted := supporting > opposing

	if accepted {
		// Ties go to the challenger: strict '>' means an exact tie is a
		// rejection, not an acceptance.
		e.members[target] = app.Clone()
		in = true
		losers = append(append([]Stake(nil), app.VotersAgainst...), Stake{Voter: app.Challenger, Amount: app.ChallengerDeposit})
		winners = append(append([]Stake(nil), app.VotersFor...), Stake{Voter: app.Candidate, Amount: app.CandidateDeposit})
		e.sink.Emit(ChallengeAcceptedApplication{Who: target})
	} else {
		if _, wasMember := e.members[target]; wasMember {
			delete(e.members, target)
			out = true
		}
		losers = append(append([]Stake(nil), app.VotersFor...), Stake{Voter: app.Candidate, Amount: app.CandidateDeposit})
		winners = append(append([]Stake(nil), app.VotersAgainst...), Stake{Voter: app.Challenger, Amount: app.ChallengerDeposit})
		e.sink.Emit(ChallengeRefusedApplication{Who: target})
	}

	delete(e.challenges, target)

	pool := e.settleLosers(losers)
	e.settleWinners(winners, pool)
	return in, out
}

// settleLosers unreserves then slashes each loser's deposit, per spec.md
// §4.1: "For every loser (account, amount): unreserve amount, then slash
// LoosersSlash × amount from that account." Slashed amounts accumulate
// into the rewards pool that settleWinners distributes.
func (e *Engine) settleLosers(losers []Stake) uint64 {
	var pool uint64
	for _, loser := range losers {
		if err := e.ledger.Unreserve(loser.Voter, loser.Amount); err != nil {
			e.log.Warn("finalize: unreserve failed for loser %s: %v", loser.Voter, err)
		}
		slashAmount := loser.Amount * e.cfg.LoosersSlashPerMille / 1000
		slashed, err := e.ledger.Slash(loser.Voter, slashAmount)
		if err != nil {
			e.log.Warn("finalize: slash failed for loser %s: %v", loser.Voter, err)
			continue
		}
		pool += slashed
	}
	return pool
}

// settleWinners unreserves every winner's deposit and distributes the
// rewards pool proportionally to unslashed deposit size, crediting the
// integer-division remainder ("dust") to the last winner in insertion
// order (the candidate on accept, the challenger on reject), per spec.md
// §4.1 and the rounding-dust design note in §9.
//
// settleWinners must be called after settleLosers so the pool it
// distributes reflects this challenge's own losers, not a stale value.
func (e *Engine) settleWinners(winners []Stake, pool uint64) {
	if len(winners) == 0 {
		// Guards the possibly-buggy source behavior flagged in spec.md §9:
		// an empty winner set must never be indexed for the dust credit.
		return
	}

	var totalWinningDeposits uint64
	for _, w := range winners {
		totalWinningDeposits += w.Amount
	}

	var allocated uint64
	for _, w := range winners[:len(winners)-1] {
		if err := e.ledger.Unreserve(w.Voter, w.Amount); err != nil {
			e.log.Warn("finalize: unreserve failed for winner %s: %v", w.Voter, err)
		}
		var reward uint64
		if totalWinningDeposits > 0 {
			reward = w.Amount * pool / totalWinningDeposits
		}
		if err := e.ledger.DepositIntoExisting(w.Voter, reward); err != nil {
			e.log.Warn("finalize: reward credit failed for winner %s: %v", w.Voter, err)
			continue
		}
		allocated += reward
	}

	last := winners[len(winners)-1]
	if err := e.ledger.Unreserve(last.Voter, last.Amount); err != nil {
		e.log.Warn("finalize: unreserve failed for winner %s: %v", last.Voter, err)
	}
	dust := pool - allocated
	if err := e.ledger.DepositIntoExisting(last.Voter, dust); err != nil {
		e.log.Warn("finalize: dust credit failed for winner %s: %v", last.Voter, err)
	}
}

func (e *Engine) sortedKeys(m map[AccountID]Application) []AccountID {
	keys := make([]AccountID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
