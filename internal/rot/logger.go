package rot

import "log"

// Logger mirrors internal/tcr.Logger; kept as a separate type so internal/rot
// has no import-time dependency on internal/tcr beyond the ChangeMembers
// contract it implements.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

type DefaultLogger struct {
	logger *log.Logger
}

func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{logger: log.Default()}
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) { l.logger.Printf("[DEBUG] rot: "+msg, fields...) }
func (l *DefaultLogger) Info(msg string, fields ...interface{})  { l.logger.Printf("[INFO] rot: "+msg, fields...) }
func (l *DefaultLogger) Warn(msg string, fields ...interface{})  { l.logger.Printf("[WARN] rot: "+msg, fields...) }
func (l *DefaultLogger) Error(msg string, fields ...interface{}) { l.logger.Printf("[ERROR] rot: "+msg, fields...) }

type noOpLogger struct{}

func (noOpLogger) Debug(string, ...interface{}) {}
func (noOpLogger) Info(string, ...interface{})  {}
func (noOpLogger) Warn(string, ...interface{})  {}
func (noOpLogger) Error(string, ...interface{}) {}
