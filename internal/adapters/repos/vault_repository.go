package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/hashicorp/vault/api"
)

const (
	appRoleLoginPath = "auth/approle/login"
	secretsPathFmt   = "apps/data/%s"
)

var errMalformedSecret = errors.New("malformed KV v2 secret")

type (
	VaultRepository struct {
		vaultClient *api.Client
	}
)

var _ ports.SecretsRepository = (*VaultRepository)(nil)

func NewVaultRepository(vaultClient *api.Client) *VaultRepository {
	return &VaultRepository{
		vaultClient: vaultClient,
	}
}

func (r *VaultRepository) SetToken(v string) {
	r.vaultClient.SetToken(v)
}

func (r *VaultRepository) Login(ctx context.Context, roleID, secretID string) error {
	resp, err := r.vaultClient.Logical().WriteWithContext(ctx, appRoleLoginPath, map[string]any{
		"role_id":   roleID,
		"secret_id": secretID,
	})
	if err != nil {
		return err
	}

	if resp == nil || resp.Auth == nil || resp.Auth.ClientToken == "" {
		return fmt.Errorf("no auth info returned from Vault")
	}

	r.vaultClient.SetToken(resp.Auth.ClientToken)

	return nil
}

// ReadSecrets reads the latest version of the KV v2 secret stored for mountPath.
// A missing secret yields an empty bundle at version zero.
func (r *VaultRepository) ReadSecrets(ctx context.Context, mountPath string) (*ports.Secrets, error) {
	path := fmt.Sprintf(secretsPathFmt, mountPath)

	secret, err := r.vaultClient.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if secret == nil || secret.Data == nil {
		return &ports.Secrets{Values: map[string]string{}}, nil
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w at %s: missing 'data' key", errMalformedSecret, path)
	}

	values := make(map[string]string, len(data))
	for key, value := range data {
		if str, ok := value.(string); ok {
			values[key] = str
		}
	}

	version, err := secretVersion(secret.Data["metadata"])
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", errMalformedSecret, path, err)
	}

	return &ports.Secrets{Values: values, Version: version}, nil
}

func secretVersion(raw any) (uint, error) {
	metadata, ok := raw.(map[string]any)
	if !ok {
		return 0, nil
	}

	switch v := metadata["version"].(type) {
	case nil:
		return 0, nil
	case json.Number:
		version, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("failed to parse version: %w", err)
		}

		return uint(version), nil
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unexpected version type: %T", v)
	}
}
