package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSlot       = "slot"
	FieldExpenseID  = "expense_id"
	FieldStore      = "store"
	FieldProduct    = "product"
	FieldAmount     = "amount_cents"
	FieldPeriod     = "period"
	FieldOrigin     = "origin"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentRegistry = "registry"
	ComponentArchive  = "archive"
	ComponentCart     = "cart"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentCache    = "cache"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpRename   = "rename"
	OpReplace  = "replace"
	OpClear    = "clear"
	OpLoad     = "load"
	OpSave     = "save"
	OpReload   = "reload"
	OpObserve  = "observe"
	OpCheckout = "checkout"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
