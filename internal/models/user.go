package models

// Preferences mirrors the toggle switches on the commuter profile page.
type Preferences struct {
	Notifications bool `json:"notifications"`
	Push          bool `json:"push"`
	InApp         bool `json:"inApp"`
	AutoSave      bool `json:"autoSave"`
	Offline       bool `json:"offline"`
	Location      bool `json:"location"`
}

// DefaultPreferences returns the toggles a freshly verified account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		InApp:         true,
		AutoSave:      true,
	}
}

// User is created only after OTP verification succeeds; no unverified rows
// ever reach this table.
type User struct {
	BaseModel
	Username     string      `gorm:"uniqueIndex;not null" json:"username"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Status       UserStatus  `gorm:"type:varchar(20);default:'active'" json:"status"`
	Role         UserRole    `gorm:"type:varchar(20);default:'user'" json:"role"`
	Preferences  Preferences `gorm:"serializer:json" json:"preferences"`
	TripsTaken   int64       `gorm:"default:0" json:"tripsTaken"`
}
