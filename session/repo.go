package session

import "time"

// Record is what survives between runs: the access token, its expiry instant
// and the account email.
type Record struct {
	Token    string
	ExpireAt time.Time
	Email    string
}

// Repository persists the session. All components go through this interface
// instead of touching storage directly; store.Sessions is the file-backed
// implementation.
type Repository interface {
	Load() (Record, error)
	Save(Record) error
	Clear() error
}
