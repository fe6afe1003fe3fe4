package ctxutil

import "context"

type requestInfoKey struct{}

// RequestInfo holds the ids the HTTP middleware attaches to a request.
type RequestInfo struct {
	TraceID   string
	RequestID string
	UserID    string
}

// Info returns the ids attached to ctx so far; missing ones are empty.
func Info(ctx context.Context) RequestInfo {
	if ctx == nil {
		return RequestInfo{}
	}
	ri, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return ri
}

func WithTrace(ctx context.Context, traceID, requestID string) context.Context {
	ri := Info(ctx)
	ri.TraceID, ri.RequestID = traceID, requestID
	return context.WithValue(ctx, requestInfoKey{}, ri)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	ri := Info(ctx)
	ri.UserID = userID
	return context.WithValue(ctx, requestInfoKey{}, ri)
}

// UserID returns the id attached by the request middleware, or "".
func UserID(ctx context.Context) string { return Info(ctx).UserID }

// LogFields renders the non-empty ids as logger key/value pairs.
func (ri RequestInfo) LogFields() []interface{} {
	var kv []interface{}
	if ri.TraceID != "" {
		kv = append(kv, "trace_id", ri.TraceID)
	}
	if ri.RequestID != "" {
		kv = append(kv, "request_id", ri.RequestID)
	}
	if ri.UserID != "" {
		kv = append(kv, "user_id", ri.UserID)
	}
	return kv
}
