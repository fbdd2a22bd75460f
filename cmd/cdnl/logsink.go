package main

import (
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// logrusSink adapts a *logrus.Entry to logr.LogSink, so logrus stays on
// the CLI side: the core only ever sees logr.
type logrusSink struct {
	entry *logrus.Entry
	name  string
}

// newLogrusLogger wraps l as a logr.Logger.
func newLogrusLogger(l *logrus.Logger) logr.Logger {
	return logr.New(&logrusSink{entry: logrus.NewEntry(l)})
}

func (s *logrusSink) Init(info logr.RuntimeInfo) {}

func (s *logrusSink) Enabled(level int) bool {
	return s.entry.Logger.IsLevelEnabled(logrus.Level(logrus.InfoLevel - logrus.Level(level)))
}

func (s *logrusSink) Info(level int, msg string, keysAndValues ...any) {
	s.entry.WithFields(fields(keysAndValues)).Log(logrus.InfoLevel-logrus.Level(level), msg)
}

func (s *logrusSink) Error(err error, msg string, keysAndValues ...any) {
	s.entry.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func (s *logrusSink) WithValues(keysAndValues ...any) logr.LogSink {
	next := *s
	next.entry = s.entry.WithFields(fields(keysAndValues))
	return &next
}

func (s *logrusSink) WithName(name string) logr.LogSink {
	next := *s
	if s.name != "" {
		next.name = s.name + "." + name
	} else {
		next.name = name
	}
	next.entry = s.entry.WithField("logger", next.name)
	return &next
}

func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}
