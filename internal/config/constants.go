package config

import "time"

const (
	envConfigPath     = "SCOREBOARD_CONFIG"
	envHTTPPort       = "SCOREBOARD_HTTP_PORT"
	envMetricsPort    = "SCOREBOARD_METRICS_PORT"
	envMetricsEnabled = "SCOREBOARD_METRICS_ENABLED"
	envOtlpEndpoint   = "SCOREBOARD_OTLP_ENDPOINT"
	envRedisAddr      = "SCOREBOARD_REDIS_ADDR"
	envRedisPassword  = "SCOREBOARD_REDIS_PASSWORD"
	envRedisDB        = "SCOREBOARD_REDIS_DB"
	envJoinTimeout    = "SCOREBOARD_UPDATE_JOIN_TIMEOUT"
)

const (
	defaultConfigPath  = "scoreboard.yaml"
	defaultHTTPPort    = "8080"
	defaultMetricsPort = "9090"
	defaultServiceName = "sports-scoreboard"
	defaultSnapshotDir = "data/snapshots"
	defaultLogoDir     = "data/logos"

	defaultDisplayDuration    = 30 * time.Second
	defaultGameDuration       = 15 * time.Second
	defaultNewCycleGap        = 10 * time.Second
	defaultUpdateJoinTimeout  = 25 * time.Second
	defaultUpdateInterval     = 5 * time.Minute
	defaultLiveUpdateInterval = 30 * time.Second
	defaultStaleGameTimeout   = 2 * time.Hour
	defaultSnapshotMaxAge     = 12 * time.Hour

	defaultRecentGamesToShow   = 5
	defaultUpcomingGamesToShow = 10
	defaultRecentWindowDays    = 7
)
