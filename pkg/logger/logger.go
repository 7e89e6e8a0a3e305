package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New создаёт структурированный JSON-логгер. Каждая запись
// получает поле service.
func New(out io.Writer, serviceName, level string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// неизвестный уровень не мешает запуску
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l.WithField("service", serviceName)
}
