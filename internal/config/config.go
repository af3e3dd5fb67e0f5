package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Runner  RunnerConfig  `mapstructure:"runner"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
}

// GameConfig holds the rules every battle is played under
type GameConfig struct {
	Board BoardConfig `mapstructure:"board"`
	Fleet []int       `mapstructure:"fleet"`
}

// BoardConfig holds board dimensions
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// RunnerConfig holds batch runner settings
type RunnerConfig struct {
	Battles           int   `mapstructure:"battles"`
	Parallelism       int   `mapstructure:"parallelism"`
	Seed              int64 `mapstructure:"seed"`
	MaxMoveFactor     int   `mapstructure:"max_move_factor"`
	StrategyTimeoutMs int   `mapstructure:"strategy_timeout_ms"`
	StartingPlayer    int   `mapstructure:"starting_player"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds per-battle artifact settings
type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	MoveLog   bool   `mapstructure:"move_log"`
	Snapshots bool   `mapstructure:"snapshots"`
	TileSize  int    `mapstructure:"tile_size"`
}

// ViewerConfig holds the interactive viewer settings
type ViewerConfig struct {
	Window       WindowConfig `mapstructure:"window"`
	TileSize     int          `mapstructure:"tile_size"`
	TurnInterval int          `mapstructure:"turn_interval"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.board.width", 10)
	v.SetDefault("game.board.height", 10)
	v.SetDefault("game.fleet", []int{1, 2, 3, 4, 5, 6, 7})

	// Runner defaults
	v.SetDefault("runner.battles", 100)
	v.SetDefault("runner.parallelism", 1)
	v.SetDefault("runner.seed", 0) // 0 picks a time-based seed
	v.SetDefault("runner.max_move_factor", 100)
	v.SetDefault("runner.strategy_timeout_ms", 1000) // 0 disables the timeout
	v.SetDefault("runner.starting_player", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Output defaults
	v.SetDefault("output.dir", "./logs")
	v.SetDefault("output.move_log", true)
	v.SetDefault("output.snapshots", false)
	v.SetDefault("output.tile_size", 32)

	// Viewer defaults
	v.SetDefault("viewer.window.width", 960)
	v.SetDefault("viewer.window.height", 560)
	v.SetDefault("viewer.window.title", "battlesim")
	v.SetDefault("viewer.tile_size", 40)
	v.SetDefault("viewer.turn_interval", 15)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/battlesim")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("BATTLESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	// Try to find environment-specific config
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate board dimensions
	if c.Game.Board.Width <= 0 || c.Game.Board.Height <= 0 {
		return fmt.Errorf("game.board dimensions must be positive")
	}

	// Validate fleet composition
	if len(c.Game.Fleet) == 0 {
		return fmt.Errorf("game.fleet must name at least one ship")
	}
	seen := make(map[int]bool, len(c.Game.Fleet))
	for _, id := range c.Game.Fleet {
		if id < 1 || id > 7 {
			return fmt.Errorf("game.fleet ids must be between 1 and 7, got %d", id)
		}
		if seen[id] {
			return fmt.Errorf("game.fleet lists ship %d twice", id)
		}
		seen[id] = true
	}

	// Validate runner configuration
	if c.Runner.Battles <= 0 {
		return fmt.Errorf("runner.battles must be positive")
	}
	if c.Runner.Parallelism <= 0 {
		return fmt.Errorf("runner.parallelism must be positive")
	}
	if c.Runner.MaxMoveFactor <= 0 {
		return fmt.Errorf("runner.max_move_factor must be positive")
	}
	if c.Runner.StrategyTimeoutMs < 0 {
		return fmt.Errorf("runner.strategy_timeout_ms must be non-negative")
	}
	if c.Runner.StartingPlayer != 1 && c.Runner.StartingPlayer != 2 {
		return fmt.Errorf("runner.starting_player must be 1 or 2")
	}

	// Validate output configuration
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Output.TileSize < 2 {
		return fmt.Errorf("output.tile_size must be at least 2")
	}

	// Validate viewer configuration
	if c.Viewer.Window.Width <= 0 || c.Viewer.Window.Height <= 0 {
		return fmt.Errorf("viewer.window dimensions must be positive")
	}
	if c.Viewer.TileSize < 2 {
		return fmt.Errorf("viewer.tile_size must be at least 2")
	}
	if c.Viewer.TurnInterval <= 0 {
		return fmt.Errorf("viewer.turn_interval must be positive")
	}

	return nil
}
