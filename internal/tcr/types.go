package tcr

import "github.com/NodleCode/PKI/internal/ledger"

// AccountID identifies a candidate, challenger or voter. It is an alias of
// ledger.AccountID so callers never need to convert between the two.
type AccountID = ledger.AccountID

// Stake is a single voter's contribution to one side of a challenge.
type Stake struct {
	Voter  AccountID
	Amount uint64
}

// Application is the one record type that flows between Applications,
// Challenges and Members. Which collection it lives in is tracked by the
// engine, not by a field on the struct itself — Challenger being non-empty
// is how callers can tell a record apart once it has been retrieved, but
// the engine never infers collection membership from it.
type Application struct {
	Candidate        AccountID
	CandidateDeposit uint64
	Metadata         []byte

	Challenger        AccountID
	ChallengerDeposit uint64

	VotesFor     uint64
	VotesAgainst uint64
	VotersFor     []Stake
	VotersAgainst []Stake

	CreatedBlock   uint64
	ChallengedBlock uint64
}

// Clone returns a deep copy so that moving a record between Applications,
// Challenges and Members never leaves two collections aliasing the same
// backing slices.
func (a Application) Clone() Application {
	out := a
	if a.Metadata != nil {
		out.Metadata = append([]byte(nil), a.Metadata...)
	}
	if a.VotersFor != nil {
		out.VotersFor = append([]Stake(nil), a.VotersFor...)
	}
	if a.VotersAgainst != nil {
		out.VotersAgainst = append([]Stake(nil), a.VotersAgainst...)
	}
	return out
}

// IsChallenged reports whether this record carries a challenger position,
// i.e. whether it currently lives in Challenges rather than Applications.
func (a Application) IsChallenged() bool {
	return a.Challenger != ""
}
