package context

import "context"

// FormSession identifies the dialog session a request operates on.
type FormSession struct {
	Kind      string
	SessionID string
}

type formSessionKey struct{}

// WithFormSession adds the dialog session to context.
func WithFormSession(ctx context.Context, kind, sessionID string) context.Context {
	return context.WithValue(ctx, formSessionKey{}, &FormSession{Kind: kind, SessionID: sessionID})
}

// GetFormSession returns the dialog session from context, or nil.
func GetFormSession(ctx context.Context) *FormSession {
	if v, ok := ctx.Value(formSessionKey{}).(*FormSession); ok {
		return v
	}
	return nil
}
