package entity

import (
	"database/sql"
	"fmt"

	"github.com/questdrop/backend/pkg/enum"
)

type SubmissionStatus string

var (
	SubmissionPending   = enum.New(SubmissionStatus("pending"))
	SubmissionCompleted = enum.New(SubmissionStatus("completed"))
	SubmissionRejected  = enum.New(SubmissionStatus("rejected"))
)

type QuestSubmission struct {
	SerialBase

	QuestID int64
	Quest   Quest `gorm:"foreignKey:QuestID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ProofURL string `gorm:"size:512"`
	Status   SubmissionStatus

	// PendingRef holds "<questID>-<userID>" while the submission is pending
	// and NULL once reviewed. The unique index backstops the one-pending rule
	// when two submits race past the existence check.
	PendingRef sql.NullString `gorm:"uniqueIndex;size:128"`

	VerifiedAt      sql.NullTime
	VerifierID      sql.NullString
	NftTokenID      int64
	RejectionReason string `gorm:"size:512"`
}

func PendingSubmissionRef(questID int64, userID string) sql.NullString {
	return sql.NullString{Valid: true, String: fmt.Sprintf("%d-%s", questID, userID)}
}

// QuestCompletion records that a user completed a quest. A row here locks the
// user out of the quest forever, even after rejection-then-resubmission races.
type QuestCompletion struct {
	QuestID int64 `gorm:"primaryKey"`
	Quest   Quest `gorm:"foreignKey:QuestID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	SubmissionID int64
}
