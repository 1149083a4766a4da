package context

import "context"

type ContextKey string

var (
	RequestIDKey     = ContextKey("X-Request-Id")
	CorrelationIDKey = ContextKey("X-Correlation-Id")
	MethodKey        = ContextKey("X-Method")
	RouteKey         = ContextKey("X-Route")
	RemoteIPKey      = ContextKey("X-Remote-Ip")
	UserIDKey        = ContextKey("X-User-Id")
	UserGroupsKey    = ContextKey("X-User-Groups")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	value, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func GetCorrelationID(ctx context.Context) string {
	value, ok := ctx.Value(CorrelationIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

func GetMethod(ctx context.Context) string {
	value, ok := ctx.Value(MethodKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

func GetRoute(ctx context.Context) string {
	value, ok := ctx.Value(RouteKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRemoteIP(ctx context.Context) string {
	value, ok := ctx.Value(RemoteIPKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) string {
	value, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetUserGroups(ctx context.Context, groups []string) context.Context {
	return context.WithValue(ctx, UserGroupsKey, groups)
}

func GetUserGroups(ctx context.Context) []string {
	value, ok := ctx.Value(UserGroupsKey).([]string)
	if !ok {
		return nil
	}
	return value
}
