package httpx

import "context"

type ctxKey string

const (
	CtxKeyOperator ctxKey = "operator"
	CtxKeyScopes   ctxKey = "scopes"
	CtxKeyClaims   ctxKey = "claims" // if you want full jwtx.Claims
)

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}

// OperatorFromCtx returns the authenticated operator subject, or "" when the
// request was not authenticated.
func OperatorFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyOperator).(string); ok {
		return v
	}
	return ""
}
