// Package secrets keeps the panel password in the OS keychain instead of
// the config file. The gate itself is a plain comparison: this is a local
// convenience lock, not real authentication.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"medvagas-engine/internal/config"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "medvagas"

func GetPanelPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("panel password not set (store it via the secrets endpoint)")
	}
	return pw, nil
}

func SetPanelPassword(account string, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeletePanelPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func PanelKeyringAccount(cfg config.Config) string {
	user := strings.TrimSpace(cfg.Panel.Username)
	if user == "" {
		user = "admin"
	}
	return fmt.Sprintf("medvagas:panel:%s", user)
}
