package config

//go:generate mockgen -destination=../mock/config/mock_config.go -package=mock_config . Repo,Service

// Repo interface representing access to the stored config
type Repo interface {
	Load() (*Config, error)
	Save(conf *Config) error
}

// Service interface for reading and writing configuration
type Service interface {
	Get() (*Config, error)
	Save(conf *Config) error
}
