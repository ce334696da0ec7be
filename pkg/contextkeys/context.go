package contextkeys

// custom type avoids collisions with other packages' keys
type contextKey string

// DBContextKey - key under which the *gorm.DB (pool or transaction) is stored
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on gin.Context
const (
	UserIDKey   = "userID"
	UserRoleKey = "role"
)
