// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/likzn/risingwave/pkg/util/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/atomic"
)

// Config contains configuration options.
type Config struct {
	Log       Log       `toml:"log" json:"log"`
	Optimizer Optimizer `toml:"optimizer" json:"optimizer"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level" json:"level"`
	// Log format, one of json or text.
	Format string `toml:"format" json:"format"`
	// Disable automatic timestamps in output.
	DisableTimestamp bool `toml:"disable-timestamp" json:"disable-timestamp"`
	// File log config.
	File logutil.FileLogConfig `toml:"file" json:"file"`
}

// Optimizer is the optimizer section of config.
type Optimizer struct {
	// MaxIterations caps the number of passes the rule driver makes over a plan.
	MaxIterations int `toml:"max-iterations" json:"max-iterations"`
	// DisabledRules lists rule names that are skipped by the rule driver.
	DisabledRules []string `toml:"disabled-rules" json:"disabled-rules"`
	// EnableTrace records every successful rewrite as an optimizer trace step.
	EnableTrace bool `toml:"enable-trace" json:"enable-trace"`
}

var defaultConf = Config{
	Log: Log{
		Level:  "info",
		Format: logutil.DefaultLogFormat,
		File:   logutil.NewFileLogConfig(logutil.DefaultLogMaxSize),
	},
	Optimizer: Optimizer{
		MaxIterations: 32,
	},
}

var globalConf = atomic.NewPointer[Config](nil)

func init() {
	StoreGlobalConfig(NewConfig())
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf := defaultConf
	conf.Optimizer.DisabledRules = nil
	return &conf
}

// GetGlobalConfig returns the global configuration.
// Other parts of the system read the global configuration through this function.
func GetGlobalConfig() *Config {
	return globalConf.Load()
}

// StoreGlobalConfig stores a new config to the globalConf. It mostly uses in the test to avoid some data races.
func StoreGlobalConfig(config *Config) {
	globalConf.Store(config)
}

// UpdateGlobal updates the global config, and provides a restore function that can be used to restore to the original.
func UpdateGlobal(f func(conf *Config)) {
	g := GetGlobalConfig()
	newConf := *g
	newConf.Optimizer.DisabledRules = append([]string(nil), g.Optimizer.DisabledRules...)
	f(&newConf)
	StoreGlobalConfig(&newConf)
}

// RestoreFunc gets a function that restore the config to the current value.
func RestoreFunc() (restore func()) {
	g := GetGlobalConfig()
	return func() {
		StoreGlobalConfig(g)
	}
}

// ErrConfigValidationFailed is returned when the config file has unknown items.
type ErrConfigValidationFailed struct {
	confFile       string
	UndecodedItems []string
}

func (e *ErrConfigValidationFailed) Error() string {
	return fmt.Sprintf("config file %s contained invalid configuration options: %s", e.confFile, strings.Join(e.UndecodedItems, ", "))
}

// Load loads config options from a toml file.
func (c *Config) Load(confFile string) error {
	metaData, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	if undecoded := metaData.Undecoded(); len(undecoded) > 0 {
		items := make([]string, 0, len(undecoded))
		for _, item := range undecoded {
			items = append(items, item.String())
		}
		return &ErrConfigValidationFailed{confFile: confFile, UndecodedItems: items}
	}
	return nil
}

// Valid checks if this config is valid.
func (c *Config) Valid() error {
	if c.Optimizer.MaxIterations < 1 {
		return fmt.Errorf("optimizer.max-iterations should be greater than 0, got %d", c.Optimizer.MaxIterations)
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format should be text or json, got %s", c.Log.Format)
	}
	return nil
}

// ToLogConfig converts *Log to *logutil.LogConfig.
func (l *Log) ToLogConfig() *logutil.LogConfig {
	return logutil.NewLogConfig(l.Level, l.Format, l.File, l.DisableTimestamp)
}

// InitializeConfig loads confPath on top of the defaults, validates the result
// and installs it as the global config. An empty confPath keeps the defaults.
func InitializeConfig(confPath string) error {
	cfg := NewConfig()
	if confPath != "" {
		if err := cfg.Load(confPath); err != nil {
			return err
		}
	}
	if err := cfg.Valid(); err != nil {
		return errors.Trace(err)
	}
	StoreGlobalConfig(cfg)
	return nil
}
