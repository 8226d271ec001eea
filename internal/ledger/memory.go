package ledger

import "sync"

type balance struct {
	free     uint64
	reserved uint64
}

// Memory is an in-memory reference Ledger, used by the local harness and by
// tests in internal/tcr and internal/rot. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	balances map[AccountID]*balance
}

// NewMemory builds an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{balances: make(map[AccountID]*balance)}
}

// SetFreeBalance seeds an account's free balance, for test and harness
// setup. It creates the account if it does not already exist.
func (m *Memory) SetFreeBalance(account AccountID, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.entry(account)
	b.free = amount
}

func (m *Memory) entry(account AccountID) *balance {
	b, ok := m.balances[account]
	if !ok {
		b = &balance{}
		m.balances[account] = b
	}
	return b
}

func (m *Memory) FreeBalance(account AccountID) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.balances[account]
	if !ok {
		return 0, nil
	}
	return b.free, nil
}

func (m *Memory) ReservedBalance(account AccountID) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.balances[account]
	if !ok {
		return 0, nil
	}
	return b.reserved, nil
}

func (m *Memory) Reserve(account AccountID, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.entry(account)
	if b.free < amount {
		return &InsufficientBalanceError{Account: account, Amount: amount, Err: ErrInsufficientFreeBalance}
	}
	b.free -= amount
	b.reserved += amount
	return nil
}

func (m *Memory) Unreserve(account AccountID, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.entry(account)
	if b.reserved < amount {
		return &InsufficientBalanceError{Account: account, Amount: amount, Err: ErrInsufficientReserved}
	}
	b.reserved -= amount
	b.free += amount
	return nil
}

func (m *Memory) Slash(account AccountID, amount uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.entry(account)
	slashed := amount
	if b.free < amount {
		slashed = b.free
	}
	b.free -= slashed
	return slashed, nil
}

func (m *Memory) DepositIntoExisting(account AccountID, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[account]
	if !ok {
		return &InsufficientBalanceError{Account: account, Amount: amount, Err: ErrUnknownAccount}
	}
	b.free += amount
	return nil
}
