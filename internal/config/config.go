package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the scoreboard daemon.
type Config struct {
	Enabled             bool                    `mapstructure:"enabled"`
	Timezone            string                  `mapstructure:"timezone"`
	DisplayDuration     float64                 `mapstructure:"display_duration"`
	GameDisplayDuration float64                 `mapstructure:"game_display_duration"`
	Leagues             map[string]LeagueConfig `mapstructure:"leagues"`
	Scheduler           SchedulerConfig         `mapstructure:"scheduler"`
	Cache               CacheConfig             `mapstructure:"cache"`
	Snapshots           SnapshotsConfig         `mapstructure:"snapshots"`
	Logos               LogosConfig             `mapstructure:"logos"`
	HTTP                HTTPConfig              `mapstructure:"http"`
	Metrics             MetricsConfig           `mapstructure:"metrics"`
}

// LeagueConfig is one league's block of the config file. Duration values are
// plain seconds to keep the file format friendly to hand editing.
type LeagueConfig struct {
	Enabled               bool                  `mapstructure:"enabled"`
	Priority              int                   `mapstructure:"priority"`
	LivePriority          bool                  `mapstructure:"live_priority"`
	APIPath               string                `mapstructure:"api_path"`
	FavoriteTeams         []string              `mapstructure:"favorite_teams"`
	ShowFavoriteTeamsOnly bool                  `mapstructure:"show_favorite_teams_only"`
	ShowAllLive           bool                  `mapstructure:"show_all_live"`
	DisplayModes          DisplayModesConfig    `mapstructure:"display_modes"`
	DisplayDurations      DisplayDurations      `mapstructure:"display_durations"`
	ModeDurations         ModeDurations         `mapstructure:"mode_durations"`
	DynamicDuration       DynamicDurationConfig `mapstructure:"dynamic_duration"`
	LiveGameDuration      float64               `mapstructure:"live_game_duration"`
	UpdateIntervalSeconds float64               `mapstructure:"update_interval_seconds"`
	LiveUpdateInterval    float64               `mapstructure:"live_update_interval"`
	NoDataInterval        float64               `mapstructure:"no_data_interval"`
	RecentGamesToShow     int                   `mapstructure:"recent_games_to_show"`
	UpcomingGamesToShow   int                   `mapstructure:"upcoming_games_to_show"`
	RecentWindowDays      int                   `mapstructure:"recent_window_days"`
	StaleGameTimeout      float64               `mapstructure:"stale_game_timeout"`
}

// DisplayModesConfig gates each mode type per league. Pointers distinguish
// "absent" (defaults to shown) from an explicit false.
type DisplayModesConfig struct {
	ShowLive     *bool `mapstructure:"show_live"`
	ShowRecent   *bool `mapstructure:"show_recent"`
	ShowUpcoming *bool `mapstructure:"show_upcoming"`
}

// DisplayDurations holds per-game dwell seconds per mode type.
type DisplayDurations struct {
	Live     float64 `mapstructure:"live"`
	Recent   float64 `mapstructure:"recent"`
	Upcoming float64 `mapstructure:"upcoming"`
}

// ModeDurations holds fixed block durations per mode type; zero means
// "not configured, use the dynamic estimate".
type ModeDurations struct {
	LiveModeDuration     float64 `mapstructure:"live_mode_duration"`
	RecentModeDuration   float64 `mapstructure:"recent_mode_duration"`
	UpcomingModeDuration float64 `mapstructure:"upcoming_mode_duration"`
}

// DynamicDurationConfig enables content-aware cycle durations per league,
// optionally refined per mode type.
type DynamicDurationConfig struct {
	Enabled            *bool                          `mapstructure:"enabled"`
	MaxDurationSeconds float64                        `mapstructure:"max_duration_seconds"`
	Modes              map[string]DynamicModeOverride `mapstructure:"modes"`
}

// DynamicModeOverride refines dynamic duration for one mode type.
type DynamicModeOverride struct {
	Enabled            *bool   `mapstructure:"enabled"`
	MaxDurationSeconds float64 `mapstructure:"max_duration_seconds"`
}

// SchedulerConfig tunes the rotation core.
type SchedulerConfig struct {
	NewCycleGapSeconds       float64 `mapstructure:"new_cycle_gap_seconds"`
	UpdateJoinTimeoutSeconds float64 `mapstructure:"update_join_timeout_seconds"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"` // memory or redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// SnapshotsConfig controls the warm-boot game list snapshots.
type SnapshotsConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	Dir           string  `mapstructure:"dir"`
	MaxAgeSeconds float64 `mapstructure:"max_age_seconds"`
}

// LogosConfig controls the team logo cache.
type LogosConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// HTTPConfig controls the status endpoint listener.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Port         string `mapstructure:"port"`
	ServiceName  string `mapstructure:"service_name"`
	OtlpEndpoint string `mapstructure:"otlp_endpoint"`
	OtlpInsecure bool   `mapstructure:"otlp_insecure"`
}

// Load reads the config file (path from SCOREBOARD_CONFIG, default
// ./scoreboard.yaml) and applies environment overrides and defaults.
func Load() (Config, error) {
	v := viper.New()
	path := envOrDefault(envConfigPath, defaultConfigPath)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.DisplayDuration <= 0 {
		cfg.DisplayDuration = defaultDisplayDuration.Seconds()
	}
	if cfg.GameDisplayDuration <= 0 {
		cfg.GameDisplayDuration = defaultGameDuration.Seconds()
	}
	if cfg.Scheduler.NewCycleGapSeconds <= 0 {
		cfg.Scheduler.NewCycleGapSeconds = defaultNewCycleGap.Seconds()
	}
	if cfg.Scheduler.UpdateJoinTimeoutSeconds <= 0 {
		cfg.Scheduler.UpdateJoinTimeoutSeconds = defaultUpdateJoinTimeout.Seconds()
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Snapshots.Dir == "" {
		cfg.Snapshots.Dir = defaultSnapshotDir
	}
	if cfg.Snapshots.MaxAgeSeconds <= 0 {
		cfg.Snapshots.MaxAgeSeconds = defaultSnapshotMaxAge.Seconds()
	}
	if cfg.Logos.Dir == "" {
		cfg.Logos.Dir = defaultLogoDir
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.Metrics.Port == "" {
		cfg.Metrics.Port = defaultMetricsPort
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = defaultServiceName
	}

	for id, league := range cfg.Leagues {
		if league.UpdateIntervalSeconds <= 0 {
			league.UpdateIntervalSeconds = defaultUpdateInterval.Seconds()
		}
		if league.LiveUpdateInterval <= 0 {
			league.LiveUpdateInterval = defaultLiveUpdateInterval.Seconds()
		}
		if league.RecentGamesToShow <= 0 {
			league.RecentGamesToShow = defaultRecentGamesToShow
		}
		if league.UpcomingGamesToShow <= 0 {
			league.UpcomingGamesToShow = defaultUpcomingGamesToShow
		}
		if league.RecentWindowDays <= 0 {
			league.RecentWindowDays = defaultRecentWindowDays
		}
		if league.StaleGameTimeout <= 0 {
			league.StaleGameTimeout = defaultStaleGameTimeout.Seconds()
		}
		cfg.Leagues[id] = league
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.HTTP.Port = envOrDefault(envHTTPPort, cfg.HTTP.Port)
	cfg.Metrics.Port = envOrDefault(envMetricsPort, cfg.Metrics.Port)
	cfg.Metrics.Enabled = boolEnvOrDefault(envMetricsEnabled, cfg.Metrics.Enabled)
	cfg.Metrics.OtlpEndpoint = envOrDefault(envOtlpEndpoint, cfg.Metrics.OtlpEndpoint)
	cfg.Cache.RedisAddr = envOrDefault(envRedisAddr, cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = envOrDefault(envRedisPassword, cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = intEnvOrDefault(envRedisDB, cfg.Cache.RedisDB)
	cfg.Scheduler.UpdateJoinTimeoutSeconds = durationEnvOrDefault(envJoinTimeout,
		secondsToDuration(cfg.Scheduler.UpdateJoinTimeoutSeconds)).Seconds()
}

// LeagueIDsByPriority returns configured league IDs sorted ascending by
// priority, name-ordered on ties so the result is stable.
func (c Config) LeagueIDsByPriority() []string {
	ids := make([]string, 0, len(c.Leagues))
	for id := range c.Leagues {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, pj := c.Leagues[ids[i]].Priority, c.Leagues[ids[j]].Priority
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// NewCycleGap returns the scheduler's new-cycle gap threshold.
func (c Config) NewCycleGap() time.Duration {
	return secondsToDuration(c.Scheduler.NewCycleGapSeconds)
}

// UpdateJoinTimeout returns the bound on the parallel update fan-out.
func (c Config) UpdateJoinTimeout() time.Duration {
	return secondsToDuration(c.Scheduler.UpdateJoinTimeoutSeconds)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
