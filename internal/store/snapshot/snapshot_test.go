package snapshot

import (
	"reflect"
	"testing"

	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/tcr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := State{
		Applications: map[tcr.AccountID]tcr.Application{
			"A": {Candidate: "A", CandidateDeposit: 100, Metadata: []byte("hello"), CreatedBlock: 5},
		},
		Challenges: map[tcr.AccountID]tcr.Application{},
		Members: map[tcr.AccountID]tcr.Application{
			"B": {Candidate: "B", CandidateDeposit: 200},
		},
		Slots: map[rot.CertificateID]rot.RootCertificate{
			"K": {Owner: "B", Key: "K", Created: 1, Renewed: 1, Validity: 1000},
		},
	}

	encoded, err := Encode(state)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !reflect.DeepEqual(state.Applications["A"].Metadata, decoded.Applications["A"].Metadata) {
		t.Fatalf("metadata mismatch: got %v, want %v", decoded.Applications["A"].Metadata, state.Applications["A"].Metadata)
	}
	if decoded.Members["B"].CandidateDeposit != 200 {
		t.Fatalf("got deposit=%d, want 200", decoded.Members["B"].CandidateDeposit)
	}
	if decoded.Slots["K"].Validity != 1000 {
		t.Fatalf("got validity=%d, want 1000", decoded.Slots["K"].Validity)
	}
}

func TestDecode_TruncatedHeader(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error on truncated header")
	}
}
