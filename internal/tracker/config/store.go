package config

// Драйверы хранилища.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StoreConfig выбирает хранилище документов.
type StoreConfig struct {
	Driver         string `yaml:"driver" env:"TRACKER_STORE_DRIVER" env-default:"memory"`
	ConnectRetries int    `yaml:"connect_retries" env:"TRACKER_STORE_CONNECT_RETRIES" env-default:"5"`
}
