// Package logger is a thin logrus front-end that prefixes every message with
// the object it concerns.
package logger

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).Name()
	}
	if len(objStr) > 20 {
		objStr = objStr[:20]
	}
	return
}

func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

func emit(logFn func(...any), obj any, msg string) {
	logFn(fmt.Sprintf("|%20s|%s", objToString(obj), msg))
}

func Debug(object any, message string) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	emit(logrus.Debug, object, message)
}

func Debugf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	emit(logrus.Debug, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	emit(logrus.Info, object, message)
}

func Infof(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	emit(logrus.Info, object, fmt.Sprintf(message, args...))
}

func Warn(object any, message string) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	emit(logrus.Warn, object, message)
}

func Warnf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	emit(logrus.Warn, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	emit(logrus.Error, object, message)
}

func Errorf(object any, message string, args ...any) {
	emit(logrus.Error, object, fmt.Sprintf(message, args...))
}
