package ctxmanage

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type key string

const TraceIdKey key = "traceId"

// WithTraceId attaches a trace id to the context, generating one when absent.
func WithTraceId(ctx context.Context, traceId string) context.Context {
	if traceId == "" {
		traceId = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIdKey, traceId)
}

func GetTraceId(ctx context.Context) string {
	traceId, ok := ctx.Value(TraceIdKey).(string)
	if !ok {
		return ""
	}
	return traceId
}

func GetTraceIdOfRequest(c *gin.Context) string {
	traceId := GetTraceId(c.Request.Context())
	if traceId == "" {
		traceId = uuid.NewString()
	}
	return traceId
}
