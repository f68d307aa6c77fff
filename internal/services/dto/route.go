package dto

// RouteRequest covers both create and full-replace update (PUT).
type RouteRequest struct {
	Name       string   `json:"name" binding:"required"`
	Status     string   `json:"status" binding:"required" validate:"is-route-status"`
	Start      string   `json:"start" binding:"required"`
	End        string   `json:"end" binding:"required"`
	Fare       *float64 `json:"fare" binding:"required"`
	TravelTime string   `json:"travelTime"`
	Steps      []string `json:"steps"`
}
