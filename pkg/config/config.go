/*
Package config manages the TOML config of kmedian.
*/
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bastiangx/kmedian/internal/utils"
	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "kmedian"

// FileName is the config file inside the config directory.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Input  InputConfig  `toml:"input"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
	Bench  BenchConfig  `toml:"bench"`
}

// SearchConfig has the defaults of a median search.
type SearchConfig struct {
	K           int    `toml:"k"`
	Order       string `toml:"order"`
	TrieDepth   int    `toml:"trie_depth"`
	Workers     int    `toml:"workers"`
	TimeLimitMs int    `toml:"time_limit_ms"`
}

// InputConfig controls how sequences are read.
type InputConfig struct {
	Alphabet    string `toml:"alphabet"`
	SkipInvalid bool   `toml:"skip_invalid"`
	UpperCase   bool   `toml:"upper_case"`
}

// ServerConfig has IPC limits.
type ServerConfig struct {
	MaxK        int `toml:"max_k"`
	MaxLimit    int `toml:"max_limit"`
	TimeLimitMs int `toml:"time_limit_ms"`
}

// CliConfig holds interactive mode options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// BenchConfig drives cmd/kbench.
type BenchConfig struct {
	SeqLength int    `toml:"seq_length"`
	MinN      int    `toml:"min_n"`
	MaxN      int    `toml:"max_n"`
	MinK      int    `toml:"min_k"`
	MaxK      int    `toml:"max_k"`
	Budget    int    `toml:"budget"`
	CutoffMs  int    `toml:"cutoff_ms"`
	Warmup    int    `toml:"warmup"`
	Output    string `toml:"output"`
	Seed      int    `toml:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			K:           10,
			Order:       median.OrderTrie.String(),
			TrieDepth:   0,
			Workers:     1,
			TimeLimitMs: 0,
		},
		Input: InputConfig{
			Alphabet:    "ACGT",
			SkipInvalid: true,
			UpperCase:   false,
		},
		Server: ServerConfig{
			MaxK:        16,
			MaxLimit:    64,
			TimeLimitMs: 30000,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
		},
		Bench: BenchConfig{
			SeqLength: 100,
			MinN:      4,
			MaxN:      25,
			MinK:      5,
			MaxK:      12,
			Budget:    1000,
			CutoffMs:  30000,
			Warmup:    3,
			Output:    "kbench.csv",
			Seed:      1,
		},
	}
}

// Validate reports the first value no search could run with.
func (c *Config) Validate() error {
	if c.Search.K < 1 {
		return fmt.Errorf("search.k must be positive, got %d", c.Search.K)
	}
	if _, err := median.ParseOrder(c.Search.Order); err != nil {
		return fmt.Errorf("search.order: %w", err)
	}
	if c.Input.Alphabet == "" {
		return fmt.Errorf("input.alphabet is empty")
	}
	if c.Bench.MinN > c.Bench.MaxN || c.Bench.MinK > c.Bench.MaxK {
		return fmt.Errorf("bench ranges are inverted")
	}
	return nil
}

// SearchOptions turns the [search] section into median options.
func (c *Config) SearchOptions() ([]median.Option, error) {
	order, err := median.ParseOrder(c.Search.Order)
	if err != nil {
		return nil, err
	}
	return []median.Option{
		median.WithOrder(order),
		median.WithTrieDepth(c.Search.TrieDepth),
		median.WithWorkers(c.Search.Workers),
	}, nil
}

// SearchTimeout returns the search budget; 0 means unbounded.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeLimitMs) * time.Millisecond
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver(AppName)
	if err != nil {
		return "", err
	}
	return pr.ConfigPath(FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/kmedian/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. A file that does not decode as a whole
// keeps every section that does; an invalid result falls back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid config in %s: %v. Using all defaults.", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// tryPartialParse salvages the sections that parse.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}
	if section, ok := utils.ExtractSection(raw, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(raw, "input"); ok {
		extractInputConfig(section, &config.Input)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		if val, ok := utils.ExtractInt(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "bench"); ok {
		extractBenchConfig(section, &config.Bench)
	}
	return config
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt(data, "k"); ok {
		s.K = val
	}
	if val, ok := utils.ExtractString(data, "order"); ok {
		s.Order = val
	}
	if val, ok := utils.ExtractInt(data, "trie_depth"); ok {
		s.TrieDepth = val
	}
	if val, ok := utils.ExtractInt(data, "workers"); ok {
		s.Workers = val
	}
	if val, ok := utils.ExtractInt(data, "time_limit_ms"); ok {
		s.TimeLimitMs = val
	}
}

func extractInputConfig(data map[string]any, in *InputConfig) {
	if val, ok := utils.ExtractString(data, "alphabet"); ok {
		in.Alphabet = val
	}
	if val, ok := utils.ExtractBool(data, "skip_invalid"); ok {
		in.SkipInvalid = val
	}
	if val, ok := utils.ExtractBool(data, "upper_case"); ok {
		in.UpperCase = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_k"); ok {
		server.MaxK = val
	}
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "time_limit_ms"); ok {
		server.TimeLimitMs = val
	}
}

func extractBenchConfig(data map[string]any, b *BenchConfig) {
	ints := map[string]*int{
		"seq_length": &b.SeqLength,
		"min_n":      &b.MinN,
		"max_n":      &b.MaxN,
		"min_k":      &b.MinK,
		"max_k":      &b.MaxK,
		"budget":     &b.Budget,
		"cutoff_ms":  &b.CutoffMs,
		"warmup":     &b.Warmup,
		"seed":       &b.Seed,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractString(data, "output"); ok {
		b.Output = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
