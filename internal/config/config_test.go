package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  board:
    width: 12
    height: 8
  fleet: [1, 2, 3]
runner:
  battles: 25
  parallelism: 4
output:
  snapshots: true
viewer:
  window:
    width: 1024
    height: 768
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err = Init(configFile)
	require.NoError(t, err)

	// Test loaded values
	c := Get()
	assert.Equal(t, 12, c.Game.Board.Width)
	assert.Equal(t, 8, c.Game.Board.Height)
	assert.Equal(t, []int{1, 2, 3}, c.Game.Fleet)
	assert.Equal(t, 25, c.Runner.Battles)
	assert.Equal(t, 4, c.Runner.Parallelism)
	assert.True(t, c.Output.Snapshots)
	assert.Equal(t, 1024, c.Viewer.Window.Width)
	assert.Equal(t, 768, c.Viewer.Window.Height)
}

func TestInitWithDefaults(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize with non-existent config (should use defaults)
	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 10, c.Game.Board.Width)
	assert.Equal(t, 10, c.Game.Board.Height)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, c.Game.Fleet)
	assert.Equal(t, 100, c.Runner.Battles)
	assert.Equal(t, 1, c.Runner.Parallelism)
	assert.Equal(t, int64(0), c.Runner.Seed)
	assert.Equal(t, 100, c.Runner.MaxMoveFactor)
	assert.Equal(t, 1000, c.Runner.StrategyTimeoutMs)
	assert.Equal(t, 1, c.Runner.StartingPlayer)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, "./logs", c.Output.Dir)
	assert.True(t, c.Output.MoveLog)
	assert.False(t, c.Output.Snapshots)
	assert.Equal(t, 32, c.Output.TileSize)
	assert.Equal(t, 960, c.Viewer.Window.Width)
	assert.Equal(t, 40, c.Viewer.TileSize)
	assert.Equal(t, 15, c.Viewer.TurnInterval)
}

func TestEnvironmentVariables(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Set environment variables
	os.Setenv("BATTLESIM_GAME_BOARD_WIDTH", "14")
	os.Setenv("BATTLESIM_RUNNER_BATTLES", "7")
	defer os.Unsetenv("BATTLESIM_GAME_BOARD_WIDTH")
	defer os.Unsetenv("BATTLESIM_RUNNER_BATTLES")

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Environment variables should override
	c := Get()
	assert.Equal(t, 14, c.Game.Board.Width)
	assert.Equal(t, 7, c.Runner.Battles)
}

func TestSet(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set values
	Set("runner.battles", 3)
	Set("viewer.window.width", 1280)

	// Check updated values
	c := Get()
	assert.Equal(t, 3, c.Runner.Battles)
	assert.Equal(t, 1280, c.Viewer.Window.Width)
}

func TestGetHelpers(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set some values
	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)

	// Test getters
	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
}

func TestLoadEnvironmentConfig(t *testing.T) {
	// Create temporary config files
	tmpDir := t.TempDir()

	// Base config
	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
runner:
  battles: 50
output:
  dir: ./logs
`
	err := os.WriteFile(baseConfig, []byte(baseContent), 0644)
	require.NoError(t, err)

	// Environment-specific config
	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
runner:
  battles: 500
logging:
  level: "error"
`
	err = os.WriteFile(envConfig, []byte(envContent), 0644)
	require.NoError(t, err)

	// Change to temp directory
	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	// Reset global state
	cfg = nil
	v = nil

	// Initialize base config
	err = Init(baseConfig)
	require.NoError(t, err)

	// Load environment config
	err = LoadEnvironmentConfig("prod")
	require.NoError(t, err)

	// Check merged values
	c := Get()
	assert.Equal(t, 500, c.Runner.Battles)     // Overridden
	assert.Equal(t, "error", c.Logging.Level)  // New value
	assert.Equal(t, "./logs", c.Output.Dir)    // Preserved from base
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Game: GameConfig{
				Board: BoardConfig{Width: 10, Height: 10},
				Fleet: []int{1, 2, 3, 4, 5, 6, 7},
			},
			Runner: RunnerConfig{
				Battles:           100,
				Parallelism:       1,
				MaxMoveFactor:     100,
				StrategyTimeoutMs: 1000,
				StartingPlayer:    1,
			},
			Logging: LoggingConfig{Level: "info", Format: "console"},
			Output:  OutputConfig{Dir: "./logs", TileSize: 32},
			Viewer: ViewerConfig{
				Window:       WindowConfig{Width: 960, Height: 560, Title: "battlesim"},
				TileSize:     40,
				TurnInterval: 15,
			},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero board width",
			mutate:  func(c *Config) { c.Game.Board.Width = 0 },
			wantErr: "game.board",
		},
		{
			name:    "empty fleet",
			mutate:  func(c *Config) { c.Game.Fleet = nil },
			wantErr: "game.fleet",
		},
		{
			name:    "fleet id out of range",
			mutate:  func(c *Config) { c.Game.Fleet = []int{1, 8} },
			wantErr: "between 1 and 7",
		},
		{
			name:    "duplicate fleet id",
			mutate:  func(c *Config) { c.Game.Fleet = []int{3, 3} },
			wantErr: "twice",
		},
		{
			name:    "zero battles",
			mutate:  func(c *Config) { c.Runner.Battles = 0 },
			wantErr: "runner.battles",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Runner.StrategyTimeoutMs = -1 },
			wantErr: "strategy_timeout_ms",
		},
		{
			name:    "bad starting player",
			mutate:  func(c *Config) { c.Runner.StartingPlayer = 3 },
			wantErr: "starting_player",
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Output.Dir = "" },
			wantErr: "output.dir",
		},
		{
			name:    "tiny viewer tiles",
			mutate:  func(c *Config) { c.Viewer.TileSize = 1 },
			wantErr: "viewer.tile_size",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := Validate(c)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
