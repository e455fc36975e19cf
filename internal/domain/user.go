package domain

import "strings"

// Column layout of the users table. Row 0 holds the header.
const (
	HeaderRow = 0

	ColID           = 0
	ColEmail        = 1
	ColPasswordHash = 2
)

// UsersHeader returns the header row written when a users table is created.
func UsersHeader() []string {
	return []string{"id", "email", "password_hash"}
}

// UserRecord is a read view over one data row of the users table.
type UserRecord struct {
	Row          int
	ID           string
	Email        string
	PasswordHash string
}

// RecordFromRow builds a UserRecord from raw cells. Missing trailing cells are
// left empty.
func RecordFromRow(index int, cells []string) UserRecord {
	rec := UserRecord{Row: index}
	if len(cells) > ColID {
		rec.ID = cells[ColID]
	}
	if len(cells) > ColEmail {
		rec.Email = cells[ColEmail]
	}
	if len(cells) > ColPasswordHash {
		rec.PasswordHash = cells[ColPasswordHash]
	}
	return rec
}

// MatchesEmail compares emails case-insensitively.
func (u UserRecord) MatchesEmail(email string) bool {
	return strings.ToLower(u.Email) == strings.ToLower(email)
}
