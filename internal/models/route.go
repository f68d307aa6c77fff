package models

import "gorm.io/datatypes"

// Route is a managed transit route. Steps keep their submitted order.
type Route struct {
	BaseModel
	Name       string                      `gorm:"not null" json:"name"`
	Status     RouteStatus                 `gorm:"type:varchar(20);not null" json:"status"`
	Start      string                      `gorm:"not null" json:"start"`
	End        string                      `gorm:"not null" json:"end"`
	Fare       float64                     `gorm:"not null" json:"fare"`
	TravelTime string                      `json:"travelTime,omitempty"`
	Steps      datatypes.JSONSlice[string] `json:"steps"`
}
