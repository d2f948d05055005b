package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldUserID       = "user_id"
	FieldEmail        = "email"
	FieldCollection   = "collection"
	FieldDocID        = "doc_id"
	FieldOwner        = "owner"
	FieldCategory     = "category"
	FieldAmountCents  = "amount_cents"
	FieldSnapshotSize = "snapshot_size"
	FieldSubscribers  = "subscribers"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentSession   = "session"
	ComponentLedger    = "ledger"
	ComponentSeeding   = "seeding"
	ComponentLiveQuery = "livequery"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentCache     = "cache"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpDelete    = "delete"
	OpList      = "list"
	OpSeed      = "seed"
	OpSubscribe = "subscribe"
	OpSnapshot  = "snapshot"
	OpRegister  = "register"
	OpLogin     = "login"
	OpLogout    = "logout"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
