package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Path returns the location of the config file.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Section returns the group a key belongs to, e.g. "resolver" for resolver.retries.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Sections lists every key group in alphabetical order.
func Sections() []string {
	sections := lo.Uniq(lo.MapToSlice(Default, func(_ string, f Field) string { return f.Section() }))
	sort.Strings(sections)
	return sections
}

// Lookup returns the field registered for k or an error suggesting the closest key.
func Lookup(k string) (Field, error) {
	if field, ok := Default[k]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return Field{}, fmt.Errorf("unknown key %s, did you mean %s?", k, closest)
}

// Parse converts raw command-line values to the type of the key's default and validates the result.
func Parse(k string, raw []string) (any, error) {
	field, err := Lookup(k)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", k)
	}

	var value any
	switch field.Value.(type) {
	case string:
		value = strings.TrimSpace(raw[0])
	case int:
		n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", k, raw[0])
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: must not be negative", k)
		}
		value = n
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", k, raw[0])
		}
		value = b
	case []string:
		value = raw
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", k, field.Value)
	}

	if validate, ok := validators[k]; ok {
		if err := validate(value); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}
	return value, nil
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if lo.Contains(options, v.(string)) {
			return nil
		}
		return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
	}
}

var validators = map[string]func(any) error{
	key.HistoryBackend: oneOf("json", "sqlite"),
	key.Player:         oneOf("mpv", "iina"),
	key.IconsVariant:   oneOf(icon.AvailableVariants()...),
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
	key.ResolverBaseURL: func(v any) error {
		u, err := url.Parse(v.(string))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("must be an absolute http(s) URL")
		}
		return nil
	},
	key.ServerPort: func(v any) error {
		if port := v.(int); port < 1 || port > 65535 {
			return fmt.Errorf("must be between 1 and 65535")
		}
		return nil
	},
	key.ResolverTimeoutMs: func(v any) error {
		if v.(int) == 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	},
}
