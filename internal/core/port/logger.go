package port

// Fields carries structured data into the log.
type Fields map[string]interface{}

// LoggerPort abstracts the application core from the concrete logger.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger with the fields pre-attached, used to
	// build request- and component-scoped loggers.
	WithFields(fields Fields) LoggerPort
}
