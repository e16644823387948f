package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

// Define struct for YAML
type VirusConfig struct {
	Viruses map[string]sim.VirusParameters `yaml:"viruses"`
}

// GetVirusConfig loads a named virus preset from a YAML file. Returns nil
// when the preset is not defined.
func GetVirusConfig(virusFilePath string, virusType string) *sim.VirusParameters {
	// Read YAML file
	data, err := os.ReadFile(virusFilePath)
	if err != nil {
		panic(err)
	}

	// Parse YAML
	var cfg VirusConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}

	if virus, virusExists := cfg.Viruses[virusType]; virusExists {
		logrus.Infof("Using preset virus %v\n", virusType)
		return &virus
	}
	return nil
}
