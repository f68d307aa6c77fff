package dto

// RecordSearchRequest - one route lookup from the destination page.
type RecordSearchRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// RouteStatsEntry keeps the legacy dashboard shape: the pair sits under
// "_id" because that is what the charts consume.
type RouteStatsEntry struct {
	ID    RoutePair `json:"_id"`
	Count int64     `json:"count"`
}

type RoutePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}
