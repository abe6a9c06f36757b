// Package auth provides a high-level API for persisting and retrieving the resolver API key from the system keyring.
package auth

import (
	"errors"

	"github.com/rko-cli/rko/constant"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const user = "resolver-api-key"

// service is the keyring service name under which the key is stored.
var service = constant.App + "-cli"

// SetAPIKey persists the resolver API key to the system keyring.
func SetAPIKey(apiKey string) error {
	if apiKey == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(service, user, apiKey)
}

// GetAPIKey retrieves the resolver API key from the system keyring.
func GetAPIKey() (string, error) {
	return keyring.Get(service, user)
}

// DeleteAPIKey removes the resolver API key from the system keyring.
func DeleteAPIKey() error {
	return keyring.Delete(service, user)
}

// APIKey returns the stored key, if any.
// A missing entry and an unavailable keyring both yield None.
func APIKey() mo.Option[string] {
	apiKey, err := GetAPIKey()
	if err != nil || apiKey == "" {
		return mo.None[string]()
	}
	return mo.Some(apiKey)
}
