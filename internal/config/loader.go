package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/shared/backoff"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const maskedValue = "********"

// ReloadFunc receives a snapshot of the configuration after new secrets were applied.
type ReloadFunc func(cfg ServiceConfig)

// Loader handles configuration loading and reloading.
type Loader struct {
	mu               sync.RWMutex
	cfg              *ServiceConfig
	secretsRepo      ports.SecretsRepository
	configSignalChan chan os.Signal
	reloadErrors     chan error
	ticker           *time.Ticker
	lastVersion      uint
	onReload         []ReloadFunc
	out              io.Writer
	backoff          backoff.Strategy
}

// NewLoader creates a new config loader instance.
func NewLoader(cfg *ServiceConfig, secretsRepo ports.SecretsRepository, initialVersion uint) *Loader {
	return &Loader{
		cfg:              cfg,
		secretsRepo:      secretsRepo,
		configSignalChan: make(chan os.Signal, 1),
		reloadErrors:     make(chan error, 1),
		lastVersion:      initialVersion,
		out:              os.Stdout,
		backoff:          backoff.NewExponentialStrategy(backoff.Config{BaseDelay: time.Second}),
	}
}

// OnReload registers fn to run after every reload that changed the secret version.
func (l *Loader) OnReload(fn ReloadFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.onReload = append(l.onReload, fn)
}

// SetOutput redirects configuration dumps.
func (l *Loader) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.out = w
}

// Config returns a copy of the current configuration.
func (l *Loader) Config() ServiceConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return *l.cfg
}

// Version is the secret version last applied.
func (l *Loader) Version() uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lastVersion
}

// WatchConfigSignals monitors for SIGHUP (reload) and SIGUSR1 (dump) signals.
// It also starts a background ticker for periodic config reloading if enabled.
// It returns a channel that will receive reload errors for logging by the caller.
func (l *Loader) WatchConfigSignals(ctx context.Context) <-chan error {
	signal.Notify(l.configSignalChan, syscall.SIGHUP, syscall.SIGUSR1)

	if l.cfg.SecretStorage.Enabled && l.cfg.SecretStorage.PollInterval > 0 {
		l.ticker = time.NewTicker(l.cfg.SecretStorage.PollInterval)
	}

	go func() {
		defer signal.Stop(l.configSignalChan)
		defer close(l.reloadErrors)

		var reloadTickerChan <-chan time.Time
		if l.ticker != nil {
			defer l.ticker.Stop()

			reloadTickerChan = l.ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case <-reloadTickerChan:
				l.handleConfigReload(ctx)

			case sig := <-l.configSignalChan:
				switch sig {
				case syscall.SIGHUP:
					l.handleConfigReload(ctx)

				case syscall.SIGUSR1:
					l.DumpConfig()
				}
			}
		}
	}()

	return l.reloadErrors
}

// DumpConfig writes the current configuration as JSON with credentials masked.
func (l *Loader) DumpConfig() {
	l.mu.RLock()
	out := l.out
	l.mu.RUnlock()

	configJSON, err := json.MarshalIndent(Masked(l.Config()), "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error marshaling config: %v\n", err)

		return
	}

	_, _ = fmt.Fprintf(out, "\n=== Configuration Dump ===\n%s\n=== End Configuration ===\n\n", string(configJSON))
}

// Masked returns a copy of cfg that is safe to print.
func Masked(cfg ServiceConfig) ServiceConfig {
	mask := func(value string) string {
		if value == "" {
			return ""
		}

		return maskedValue
	}

	cfg.Queue.Password = mask(cfg.Queue.Password)
	cfg.SecretStorage.Token = mask(cfg.SecretStorage.Token)
	cfg.SecretStorage.SecretID = mask(cfg.SecretStorage.SecretID)

	if cfg.Queue.URL != "" {
		cfg.Queue.URL = queue.SanitizeURL(cfg.Queue.URL)
	}

	return cfg
}

// Load authenticates against the secrets' repository and applies the latest secrets to the configuration.
func (l *Loader) Load(ctx context.Context) (uint, error) {
	if !l.cfg.SecretStorage.Enabled {
		return 0, fmt.Errorf("secret storage is not enabled")
	}

	if err := authenticateVault(ctx, l.secretsRepo, l.cfg.SecretStorage); err != nil {
		return 0, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	secrets, err := l.getSecretsWithRetry(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := applySecretsToConfig(l.cfg, secrets.Values); err != nil {
		return 0, fmt.Errorf("failed to apply secrets to config: %w", err)
	}

	l.lastVersion = secrets.Version

	return secrets.Version, nil
}

// Init config from the environment, reading a .env file first when one exists.
func Init() (*ServiceConfig, error) {
	_ = godotenv.Load()

	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if len(ServiceVersion) != 0 {
		cfg.AppConfig.ServiceVersion = ServiceVersion
	}

	if len(CommitSHA) != 0 {
		cfg.AppConfig.CommitSHA = CommitSHA
	}

	if len(APIVersion) != 0 {
		cfg.AppConfig.APIVersion = APIVersion
	}

	return cfg, nil
}

func authenticateVault(ctx context.Context, client ports.SecretsRepository, config SecretStorageConfig) error {
	switch strings.ToLower(config.AuthMethod) {
	case "token":
		if config.Token == "" {
			return fmt.Errorf("token is required for token auth method")
		}

		client.SetToken(config.Token)

		return nil

	case "approle":
		if config.RoleID == "" || config.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth method")
		}

		if err := client.Login(ctx, config.RoleID, config.SecretID); err != nil {
			return fmt.Errorf("failed to authenticate via approle: %w", err)
		}

		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", config.AuthMethod)
	}
}

func (l *Loader) handleConfigReload(ctx context.Context) {
	previous := l.Version()

	version, err := l.Load(ctx)
	if err != nil {
		l.reportReloadStatus(err)

		return
	}

	if version == previous {
		return
	}

	l.mu.RLock()
	snapshot := *l.cfg
	hooks := append([]ReloadFunc(nil), l.onReload...)
	l.mu.RUnlock()

	for _, hook := range hooks {
		hook(snapshot)
	}

	l.reportReloadStatus(nil)
}

func (l *Loader) getSecretsWithRetry(ctx context.Context) (*ports.Secrets, error) {
	storage := l.cfg.SecretStorage

	ctx, cancel := context.WithTimeout(ctx, storage.Timeout)
	defer cancel()

	var (
		secrets *ports.Secrets
		err     error
	)

	for attempt := 0; attempt <= storage.MaxRetries; attempt++ {
		secrets, err = l.secretsRepo.ReadSecrets(ctx, storage.MountPath)
		if err == nil {
			break
		}

		if attempt == storage.MaxRetries {
			break
		}

		timer := time.NewTimer(l.backoff.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, fmt.Errorf("reading %s: %w", storage.MountPath, ctx.Err())
		case <-timer.C:
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read from path %s after %d retries: %w", storage.MountPath, storage.MaxRetries, err)
	}

	if secrets == nil {
		return &ports.Secrets{}, nil
	}

	return secrets, nil
}

// applySecretsToConfig directly from flat key-value pairs stored in Vault
func applySecretsToConfig(cfg *ServiceConfig, data map[string]string) error {
	for key, value := range data {
		if value == "" {
			continue
		}

		if err := applySecretToConfig(cfg, key, value); err != nil {
			return err
		}
	}

	return nil
}

func applySecretToConfig(cfg *ServiceConfig, key, value string) error {
	switch key {
	case "RABBITMQ_URL":
		cfg.Queue.URL = value
	case "RABBITMQ_HOST":
		cfg.Queue.Host = value
	case "RABBITMQ_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RABBITMQ_PORT %q: %w", value, err)
		}

		cfg.Queue.Port = port
	case "RABBITMQ_USERNAME":
		cfg.Queue.Username = value
	case "RABBITMQ_PASSWORD":
		cfg.Queue.Password = value
	case "RABBITMQ_VIRTUAL_HOST":
		cfg.Queue.VirtualHost = value
	case "BROKER_PROBE_BASE_URL":
		cfg.BrokerProbe.BaseURL = value
	}

	return nil
}

// reportReloadStatus sends reload status (error or nil for success) to reloadErrors channel.
// It uses non-blocking send to avoid blocking if no receiver is ready.
func (l *Loader) reportReloadStatus(err error) {
	select {
	case l.reloadErrors <- err:
	default:
	}
}
