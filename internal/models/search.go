package models

import "time"

// Search is one append-only telemetry record per route lookup.
// "from"/"to" are reserved words in some SQL dialects, hence the column names.
type Search struct {
	BaseModel
	From string    `gorm:"column:from_location;not null" json:"from"`
	To   string    `gorm:"column:to_location;not null" json:"to"`
	Date time.Time `gorm:"default:now();index" json:"date"`
}
