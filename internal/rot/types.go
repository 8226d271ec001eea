// Package rot implements the Root-of-Trust registry: a slot table mapping
// externally supplied certificate identifiers to root certificates owned
// by members of the Token Curated Registry, plus the validity predicates
// off-chain verifiers query.
package rot

import "github.com/NodleCode/PKI/internal/ledger"

// AccountID identifies a slot owner; it is an alias of ledger.AccountID.
type AccountID = ledger.AccountID

// CertificateID identifies a slot in the registry. It is an opaque byte
// sequence supplied by the caller; no cryptographic meaning is derived
// from it (signature verification of child certificates is a documented
// future extension, not implemented here).
type CertificateID string

// RootCertificate is one booked slot. It is never deleted: expiry and
// revocation are predicates over its fields, not state removal.
type RootCertificate struct {
	Owner   AccountID
	Key     CertificateID
	Created uint64
	Renewed uint64
	Revoked bool
	// Validity is the block-number duration after Renewed beyond which
	// the certificate expires.
	Validity uint64
	// ChildRevocations has set semantics: duplicates are tolerated but
	// membership, not count, is what validity checks against.
	ChildRevocations []CertificateID
}

// IsExpired reports whether the certificate has aged past its validity
// window as of block now.
func (c RootCertificate) IsExpired(now uint64) bool {
	return !(c.Renewed+c.Validity > now)
}

// HasRevokedChild reports whether child is present in ChildRevocations.
func (c RootCertificate) HasRevokedChild(child CertificateID) bool {
	for _, r := range c.ChildRevocations {
		if r == child {
			return true
		}
	}
	return false
}
