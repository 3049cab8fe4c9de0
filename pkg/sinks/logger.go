package sinks

import "context"

// Logger defines the logging surface sinks rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// logSink writes events to the application logger.
type logSink struct {
	id  string
	typ string
	log Logger
}

func newLogSink(cfg SinkConfig, log Logger) Sink {
	return &logSink{id: cfg.ID, typ: TypeLog, log: ensureLogger(log)}
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return l.typ }

// Record logs the event; failures are logged at warn, successes at info.
func (l *logSink) Record(_ context.Context, evt Event) error {
	if evt.Outcome == OutcomeSuccess {
		l.log.InfoObj("api call succeeded", "api_call", evt)
	} else {
		l.log.WarnObj("api call failed", "api_call", evt)
	}
	return nil
}
