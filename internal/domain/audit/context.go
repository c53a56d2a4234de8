package audit

import "context"

type contextKey int

const requestMetadataKey contextKey = iota

// RequestMetadata is the caller-side request context carried on every audit
// entry written while handling the request.
type RequestMetadata struct {
	IPAddress string
	UserAgent string
}

func WithRequestMetadata(ctx context.Context, meta RequestMetadata) context.Context {
	return context.WithValue(ctx, requestMetadataKey, meta)
}

func RequestMetadataFromContext(ctx context.Context) (RequestMetadata, bool) {
	meta, ok := ctx.Value(requestMetadataKey).(RequestMetadata)
	return meta, ok
}
