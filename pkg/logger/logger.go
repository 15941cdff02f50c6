package logger

// Logger is the logging contract the rest of the service depends on.
// Adapters (zap_adapter) satisfy it; packages narrow it down to the
// methods they actually use.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field struct {
	Key   string
	Value interface{}
}

func NewField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
