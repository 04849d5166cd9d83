package entity

import "time"

type Quest struct {
	SerialBase

	Title        string
	Description  string `gorm:"size:2048"`
	Requirements string `gorm:"size:2048"`
	RewardAmount int64
	IsActive     bool

	StartTime time.Time
	EndTime   time.Time

	MaxCompletions     int64
	CurrentCompletions int64

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`
}
