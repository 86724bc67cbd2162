package logger

import (
	"fmt"
	"log"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// ParseLevel maps a config string to a level. Unknown strings mean INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARNING
	case "ERROR":
		return ERROR
	case "SILENCE":
		return SILENCE
	default:
		return INFO
	}
}

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "SILENCE"
	}
}

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level Level
}

func NewLogger(level Level) *defaultLogger {
	return &defaultLogger{level: level}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.output(DEBUG, msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.output(INFO, msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.output(WARNING, msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.output(ERROR, msg, a...)
}

func (l *defaultLogger) output(level Level, msg string, a ...any) {
	if l.level > level {
		return
	}

	log.Printf("%-5s %s\n", level.String(), fmt.Sprintf(msg, a...))
}
