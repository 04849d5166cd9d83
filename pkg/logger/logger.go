package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

var tags = map[Level]string{
	DEBUG:   "DBG",
	INFO:    "INF",
	WARNING: "WRN",
	ERROR:   "ERR",
}

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type stdLogger struct {
	level Level
	out   *log.Logger
}

func NewLogger(level Level) *stdLogger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level Level) *stdLogger {
	return &stdLogger{level: level, out: log.New(w, "", log.LstdFlags)}
}

func (l *stdLogger) logf(level Level, msg string, a ...any) {
	if level < l.level {
		return
	}

	l.out.Printf("%s %s", tags[level], fmt.Sprintf(msg, a...))
}

func (l *stdLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, msg, a...)
}

func (l *stdLogger) Infof(msg string, a ...any) {
	l.logf(INFO, msg, a...)
}

func (l *stdLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, msg, a...)
}

func (l *stdLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, msg, a...)
}
