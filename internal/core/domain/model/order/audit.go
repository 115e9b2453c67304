package order

import "time"

// AuditEntry records one state-changing action. Entries are never edited or removed.
type AuditEntry struct {
	action    Action
	actor     Actor
	detail    string
	timestamp time.Time
}

// NewAuditEntry builds an entry. A zero timestamp is assigned when the entry is appended.
func NewAuditEntry(action Action, actor Actor, detail string, timestamp time.Time) AuditEntry {
	return AuditEntry{action: action, actor: actor, detail: detail, timestamp: timestamp}
}

// Action returns what kind of change was recorded.
func (e AuditEntry) Action() Action {
	return e.action
}

// Actor returns who made the change.
func (e AuditEntry) Actor() Actor {
	return e.actor
}

// Detail returns the human-readable description, e.g.
// "Changed status from NEW_INQUIRY to WAITING_CLIENT_APPROVAL. Prices updated."
func (e AuditEntry) Detail() string {
	return e.detail
}

// Timestamp returns when the change happened, in UTC.
func (e AuditEntry) Timestamp() time.Time {
	return e.timestamp
}
