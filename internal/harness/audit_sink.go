package harness

import (
	"context"
	"fmt"

	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/store/audit"
	"github.com/NodleCode/PKI/internal/tcr"
)

// tcrAuditSink adapts tcr.EventSink to audit.Recorder, so every TCR
// resolution lands a row in the audit trail. Recording is best-effort:
// audit.Recorder.Record's own contract is that a logging failure must
// never surface as an engine failure, so errors are dropped here too.
type tcrAuditSink struct {
	rec audit.Recorder
}

func (s tcrAuditSink) Emit(e tcr.Event) {
	kind, subject, detail := describeTCREvent(e)
	_ = s.rec.Record(context.Background(), kind, subject, detail)
}

func describeTCREvent(e tcr.Event) (kind, subject, detail string) {
	switch ev := e.(type) {
	case tcr.NewApplication:
		return "tcr.new_application", string(ev.Who), fmt.Sprintf("amount=%d", ev.Amount)
	case tcr.ApplicationCountered:
		return "tcr.application_countered", string(ev.Target),
			fmt.Sprintf("challenger=%s amount=%d", ev.Challenger, ev.Amount)
	case tcr.VoteRecorded:
		return "tcr.vote_recorded", string(ev.Target),
			fmt.Sprintf("voter=%s amount=%d supporting=%t", ev.Voter, ev.Amount, ev.Supporting)
	case tcr.ApplicationPassed:
		return "tcr.application_passed", string(ev.Who), ""
	case tcr.ApplicationChallenged:
		return "tcr.application_challenged", string(ev.Target),
			fmt.Sprintf("challenger=%s amount=%d", ev.Challenger, ev.Amount)
	case tcr.ChallengeAcceptedApplication:
		return "tcr.challenge_accepted_application", string(ev.Who), ""
	case tcr.ChallengeRefusedApplication:
		return "tcr.challenge_refused_application", string(ev.Who), ""
	default:
		return "tcr.unknown_event", "", fmt.Sprintf("%#v", e)
	}
}

// rotAuditSink adapts rot.EventSink to audit.Recorder, so every slot
// booking and renewal lands a row in the audit trail.
type rotAuditSink struct {
	rec audit.Recorder
}

func (s rotAuditSink) Emit(e rot.Event) {
	kind, subject, detail := describeRoTEvent(e)
	_ = s.rec.Record(context.Background(), kind, subject, detail)
}

func describeRoTEvent(e rot.Event) (kind, subject, detail string) {
	switch ev := e.(type) {
	case rot.SlotTaken:
		return "rot.slot_taken", string(ev.CertificateID), fmt.Sprintf("owner=%s", ev.Owner)
	case rot.SlotRenewed:
		return "rot.slot_renewed", string(ev.CertificateID), fmt.Sprintf("owner=%s", ev.Owner)
	default:
		return "rot.unknown_event", "", fmt.Sprintf("%#v", e)
	}
}
