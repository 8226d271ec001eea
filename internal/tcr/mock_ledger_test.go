package tcr

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/NodleCode/PKI/internal/ledger"
)

func TestApply_ReservesExactlyOnceOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := ledger.NewMockLedger(ctrl)
	mockLedger.EXPECT().Reserve(ledger.AccountID("A"), uint64(100)).Return(nil).Times(1)

	e := NewEngine(Config{MinimumApplicationAmount: 100}, mockLedger)
	if err := e.Apply("A", nil, 100, 0); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func TestApply_NeverReservesWhenDepositTooSmall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := ledger.NewMockLedger(ctrl)
	// No EXPECT() set on Reserve: the controller fails the test if it is
	// ever called, verifying the precondition check short-circuits before
	// touching the ledger.

	e := NewEngine(Config{MinimumApplicationAmount: 100}, mockLedger)
	if err := e.Apply("A", nil, 10, 0); err != ErrDepositTooSmall {
		t.Fatalf("got %v, want ErrDepositTooSmall", err)
	}
}
