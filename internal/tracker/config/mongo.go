package config

import "time"

// MongoConfig представляет конфигурацию MongoDB.
type MongoConfig struct {
	URI            string        `yaml:"uri" env:"TRACKER_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"TRACKER_MONGO_DATABASE" env-default:"exercise-tracker"`
	Collection     string        `yaml:"collection" env:"TRACKER_MONGO_COLLECTION" env-default:"users"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"TRACKER_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}
