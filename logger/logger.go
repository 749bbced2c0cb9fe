package logger

import (
    "github.com/sirupsen/logrus"
)

// Logger is a global variable that represents the logger instance.
// Usable before Init; Init replaces it with the configured instance.
var Logger = logrus.New()

// Init initializes the logger by creating a new instance of logrus.Logger
func Init(level string) {
    Logger = logrus.New()
    Logger.SetFormatter(&logrus.TextFormatter{
        FullTimestamp: true,
    })
    parsed, err := logrus.ParseLevel(level)
    if err != nil {
        parsed = logrus.InfoLevel
    }
    Logger.SetLevel(parsed)
}
