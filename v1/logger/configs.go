package logger

// Log level names accepted in Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings. An unknown Level falls back to Info.
type Config struct {
	Level       string `yaml:"level" envconfig:"LOGGER_LEVEL"`
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`
}
