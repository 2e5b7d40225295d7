// Package model defines database models
package model

// Status is the folder an email currently lives in. "starred" is not a
// status, it's a filtered view over the Starred flag.
type Status string

const (
	StatusInbox    Status = "inbox"
	StatusSent     Status = "sent"
	StatusArchived Status = "archived"
	StatusTrash    Status = "trash"
)

// FolderStarred is the synthetic listing folder backed by the Starred flag
const FolderStarred = "starred"

// ParseStatus validates a caller-supplied status string against the
// closed set of canonical statuses
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusInbox, StatusSent, StatusArchived, StatusTrash:
		return Status(s), true
	}

	return "", false
}

// ValidFolder reports if f names a listable folder. Folders are the four
// statuses plus the starred view
func ValidFolder(f string) bool {
	if f == FolderStarred {
		return true
	}

	_, ok := ParseStatus(f)
	return ok
}

type Email struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	FromEmail string `gorm:"not null" json:"from_email"`
	FromName  string `gorm:"not null" json:"from_name"`
	ToEmail   string `gorm:"not null" json:"to_email"`
	Subject   string `gorm:"not null" json:"subject"`
	Body      string `gorm:"not null" json:"body"`

	Status  Status `gorm:"not null;default:inbox" json:"status"`
	Read    bool   `gorm:"not null;default:false" json:"read"`
	Starred bool   `gorm:"not null;default:false" json:"starred"`

	// Unix millisecond timestamp
	CreatedAt int64 `gorm:"not null" json:"created_at"`
}
