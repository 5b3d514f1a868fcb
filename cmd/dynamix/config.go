// Config loading for the dynamix CLI.
package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	configFileName = "dynamix"
	configFileType = "yaml"

	cfgKeySchema  = "schema"
	cfgKeyDir     = "dir"
	cfgKeyPackage = "package"

	defaultSchema = "schema.yaml"
	defaultDir    = "."
)

// loadConfig reads dynamix.yaml from the working directory using Viper.
// A missing config file is not an error; defaults apply. An explicit
// --config path that cannot be read is an error.
func loadConfig(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySchema, defaultSchema)
	v.SetDefault(cfgKeyDir, defaultDir)
	v.SetDefault(cfgKeyPackage, "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	return v, nil
}
