package contextkeys

// Custom key type avoids collisions with other context users.
type contextKey string

// DBContextKey holds the per-request *gorm.DB (the shared pool, or a test
// transaction injected by the integration harness).
const DBContextKey = contextKey("db")
