package logkey

const (
	TraceID = "Trace ID"
	ERROR   = "Error"
	OrderID = "OrderID"
	UserID  = "UserID"
)
