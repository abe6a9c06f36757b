// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Resolver - these keys configure the remote resolver request and its retry policy.
const (
	ResolverBaseURL       = "resolver.base_url"
	ResolverAPIKey        = "resolver.api_key"
	ResolverRetries       = "resolver.retries"
	ResolverRetryDelayMs  = "resolver.retry_delay_ms"
	ResolverTimeoutMs     = "resolver.timeout_ms"
	ResolverCache         = "resolver.cache"
	ResolverCacheTTLHours = "resolver.cache_ttl_hours"
)

// Network - these keys tune the shared HTTP transport.
const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Downloads - these keys govern the per-offer fetch-and-save lifecycle.
const (
	DownloadDir          = "download.dir"
	DownloadTimeoutMs    = "download.timeout_ms"
	DownloadResetDelayMs = "download.reset_delay_ms"
	DownloadFallback     = "download.fallback"
	DownloadFallbackApp  = "download.fallback_app"
)

// History Tracking - these keys configure the persistence of download attempts.
const (
	HistoryEnabled = "history.enabled"
	HistoryBackend = "history.backend"
)

// Feedback - these keys set the lifetime of transient notifications.
const (
	FeedbackToastMs = "feedback.toast_ms"
	FeedbackErrorMs = "feedback.error_ms"
)

// Static Server - these keys configure the bundled web front-end server.
const (
	ServerHost = "server.host"
	ServerPort = "server.port"
)

// Search Interaction - these keys define the UI/UX parameters for URL input.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Media Playback - these keys configure the external player used by "play".
const (
	Player = "player.default"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
