package contextkeys

// Keys stored in gin / request contexts. Typed constants keep lookups
// collision-free across packages.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	UserIDKey    ContextKey = "user_id"
	LoggerKey    ContextKey = "logger"
	DBKey        ContextKey = "db"
)

func (c ContextKey) String() string {
	return string(c)
}
