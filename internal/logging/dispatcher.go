package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// KVLogger turns the key/value call style used by the dispatcher into
// zerolog events.
type KVLogger struct {
	zl zerolog.Logger
}

// NewComponentLogger tags every entry with the given component name.
func NewComponentLogger(zl zerolog.Logger, component string) *KVLogger {
	return &KVLogger{zl: zl.With().Str("component", component).Logger()}
}

// NewDispatcherLogger is the logger handed to dispatcher.New.
func NewDispatcherLogger(zl zerolog.Logger) *KVLogger {
	return NewComponentLogger(zl, "dispatcher")
}

func (l *KVLogger) Debug(msg string, kv ...any) { withKV(l.zl.Debug(), kv).Msg(msg) }
func (l *KVLogger) Info(msg string, kv ...any)  { withKV(l.zl.Info(), kv).Msg(msg) }
func (l *KVLogger) Error(msg string, kv ...any) { withKV(l.zl.Error(), kv).Msg(msg) }

// withKV adds pairs in call order. A non-string key is printed with %v and
// an odd trailing element is logged under "!BADKEY", as slog does.
func withKV(e *zerolog.Event, kv []any) *zerolog.Event {
	if e == nil {
		return nil
	}
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			e = e.Interface("!BADKEY", kv[i])
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		switch v := kv[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}
