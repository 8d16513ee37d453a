package config

import (
	"errors"

	"github.com/imdario/mergo"
	"github.com/robgonnella/sweep/internal/exception"
)

// ConfigService implements the Service interface
type ConfigService struct {
	repo Repo
}

// NewConfigService returns a new instance of ConfigService
func NewConfigService(repo Repo) *ConfigService {
	return &ConfigService{repo: repo}
}

// Get returns the stored config with unset fields filled from Default.
// When nothing is stored the defaults are returned as is.
func (s *ConfigService) Get() (*Config, error) {
	conf, err := s.repo.Load()

	if errors.Is(err, exception.ErrRecordNotFound) {
		return Default(), nil
	}

	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(conf, Default()); err != nil {
		return nil, err
	}

	return conf, nil
}

// Save stores conf
func (s *ConfigService) Save(conf *Config) error {
	return s.repo.Save(conf)
}
