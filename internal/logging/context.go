package logging

import (
	"context"
	"log/slog"

	"github.com/yertz/yapr/pkg/core"
)

// ContextProvider supplies attributes that are looked up again for every
// record.
type ContextProvider func() []slog.Attr

// IdentityContext tags records with the local player and game version once
// bootstrap or the live log has revealed them.
func IdentityContext(identity func() core.Identity) ContextProvider {
	return func() []slog.Attr {
		id := identity()
		attrs := make([]slog.Attr, 0, 2)
		if known(id.PlayerName) {
			attrs = append(attrs, slog.String("player", id.PlayerName))
		}
		if known(id.GameVersion) {
			attrs = append(attrs, slog.String("gameVersion", id.GameVersion))
		}
		return attrs
	}
}

func known(v string) bool {
	return v != "" && v != core.Unknown
}

// withContext decorates an inner handler with a ContextProvider.
type withContext struct {
	slog.Handler
	provide ContextProvider
}

func (h withContext) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.provide()...)
	return h.Handler.Handle(ctx, r)
}

func (h withContext) WithAttrs(attrs []slog.Attr) slog.Handler {
	return withContext{h.Handler.WithAttrs(attrs), h.provide}
}

func (h withContext) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return withContext{h.Handler.WithGroup(name), h.provide}
}
