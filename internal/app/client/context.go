package client

import "context"

type ctxKey struct{}

// IntoContext attaches the app to a command context.
func IntoContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext extracts the app attached by IntoContext, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(ctxKey{}).(*App)
	return app
}
