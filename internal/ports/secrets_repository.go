//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

import (
	"context"
)

//counterfeiter:generate -o ../mocks/secrets_repository.go . SecretsRepository

type (
	// Secrets is one version of the flat key/value bundle stored for the service.
	Secrets struct {
		Values  map[string]string
		Version uint
	}

	SecretsRepository interface {
		SetToken(token string)
		// Login exchanges AppRole credentials for a client token and installs it.
		Login(ctx context.Context, roleID, secretID string) error
		// ReadSecrets reads the latest KV v2 version stored under mountPath.
		ReadSecrets(ctx context.Context, mountPath string) (*Secrets, error)
	}
)
