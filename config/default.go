// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/style"
	"github.com/spf13/viper"
)

// Field is a registered setting together with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable bound to the field, e.g. RKO_RESOLVER_RETRIES.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Current returns the effective value after files, flags and the environment are applied.
func (f *Field) Current() any {
	return viper.Get(f.Key)
}

// Overridden reports whether the effective value differs from the default.
func (f *Field) Overridden() bool {
	return fmt.Sprint(f.Current()) != fmt.Sprint(f.Value)
}

// Pretty renders the field for "rko config info".
func (f *Field) Pretty() string {
	label := style.Fg(color.Blue)
	var b strings.Builder

	for _, line := range strings.Split(f.Description, "\n") {
		b.WriteString(style.Faint(line) + "\n")
	}
	current := render(f.Current())
	if f.Overridden() {
		current += " " + style.Fg(color.Yellow)("(changed)")
	}
	_, _ = fmt.Fprintf(&b, "%s %s\n", label("key     "), style.Fg(color.Purple)(f.Key))
	_, _ = fmt.Fprintf(&b, "%s %s\n", label("env     "), f.Env())
	_, _ = fmt.Fprintf(&b, "%s %s\n", label("value   "), current)
	_, _ = fmt.Fprintf(&b, "%s %s", label("default "), render(f.Value))
	return b.String()
}

func render(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		if value == "" {
			return style.Faint("(empty)")
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

// MarshalJSON reports the effective value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Section     string `json:"section"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Env:         f.Env(),
		Value:       f.Current(),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ResolverBaseURL, constant.ResolverBaseURL, "Base URL of the remote resolver service")
	register(key.ResolverAPIKey, constant.ResolverAPIKey, "API key sent to the resolver.\nA key stored with \"rko auth set\" takes precedence")
	register(key.ResolverRetries, 4, "Number of retries after the first failed resolve attempt")
	register(key.ResolverRetryDelayMs, 2000, "Base delay in milliseconds before the first retry.\nDoubles on every following retry")
	register(key.ResolverTimeoutMs, 15000, "Timeout in milliseconds of a single resolve attempt")
	register(key.ResolverCache, false, "Cache successful resolver responses on disk")
	register(key.ResolverCacheTTLHours, 6, "Lifetime of cached resolver responses in hours")
	register(key.NetworkTLSFingerprint, false, "Use a Chrome TLS fingerprint for outgoing requests")
	register(key.DownloadDir, "", "Directory where downloads are saved.\nDefaults to the user's Downloads folder")
	register(key.DownloadTimeoutMs, 600000, "Timeout in milliseconds of a single media download")
	register(key.DownloadResetDelayMs, 3000, "Delay in milliseconds before a finished download control resets to idle")
	register(key.DownloadFallback, true, "Open the media URL in the browser when the direct download fails")
	register(key.DownloadFallbackApp, "", "Application that receives fallback downloads.\nEmpty means the system default handler")
	register(key.HistoryEnabled, true, "Record every download attempt in the local history")
	register(key.HistoryBackend, "json", "History storage backend.\nAvailable options are: json, sqlite")
	register(key.FeedbackToastMs, 4000, "Lifetime in milliseconds of a status notification")
	register(key.FeedbackErrorMs, 8000, "Lifetime in milliseconds of an inline error message")
	register(key.ServerHost, "0.0.0.0", "Interface the static web server binds to")
	register(key.ServerPort, 5000, "Port of the static web server.\nThe PORT environment variable overrides it")
	register(key.SearchShowQuerySuggestions, true, "Suggest previously resolved URLs while typing")
	register(key.IconsVariant, "emoji", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.Player, "mpv", "Media player used by the play command")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}
