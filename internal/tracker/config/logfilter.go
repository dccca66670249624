package config

// LogFilterConfig управляет отбором журнала.
type LogFilterConfig struct {
	// Legacy: при to без from результат пуст, как в первой версии сервиса.
	Legacy bool `yaml:"legacy" env:"TRACKER_LOG_FILTER_LEGACY" env-default:"false"`
}
