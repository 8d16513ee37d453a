package config

import (
	"time"
)

// SweepConfig represents defaults applied to port sweeps
type SweepConfig struct {
	Ports       string        `yaml:"ports"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	Rate        int           `yaml:"rate"`
	Banner      bool          `yaml:"banner"`
	Engine      string        `yaml:"engine"`
}

// HostsConfig represents defaults applied to host sweeps
type HostsConfig struct {
	Port        uint16        `yaml:"port"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

// DNSConfig represents defaults applied to dns recon
type DNSConfig struct {
	Nameserver string        `yaml:"nameserver"`
	Timeout    time.Duration `yaml:"timeout"`
}

// StorageConfig represents report persistence settings
type StorageConfig struct {
	Disabled bool `yaml:"disabled"`
}

// Config represents the data structure of our user provided yaml configuration
type Config struct {
	Sweep   SweepConfig   `yaml:"sweep"`
	Hosts   HostsConfig   `yaml:"hosts"`
	DNS     DNSConfig     `yaml:"dns"`
	Storage StorageConfig `yaml:"storage"`
}

// Default returns the configuration used when no config file exists and to
// fill any field a config file leaves unset
func Default() *Config {
	return &Config{
		Sweep: SweepConfig{
			Ports:       "1-100",
			Timeout:     time.Millisecond * 500,
			Concurrency: 100,
			Rate:        0,
			Banner:      false,
			Engine:      "connect",
		},
		Hosts: HostsConfig{
			Port:        80,
			Timeout:     time.Second,
			Concurrency: 100,
		},
		DNS: DNSConfig{
			Nameserver: "",
			Timeout:    time.Second * 3,
		},
		Storage: StorageConfig{
			Disabled: false,
		},
	}
}
