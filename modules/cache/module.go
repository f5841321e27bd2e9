package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/storage/redis/v3"
)

// PluginName is the alias modules use to receive the cache plugin.
const PluginName = "cache"

// PluginModule provides the snapshot cache as a mono plugin. Plugins start
// before and stop after regular modules.
type PluginModule struct {
	container types.ServiceContainer
	storage   *redis.Storage
	service   SnapshotCache
	redisAddr string
	prefix    string
	ttl       time.Duration
	logger    types.Logger
}

var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a cache plugin for the Redis server at redisAddr.
func NewPluginModule(redisAddr, prefix string, ttl time.Duration, logger types.Logger) *PluginModule {
	return &PluginModule{
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return PluginName
}

// Start connects to Redis.
func (m *PluginModule) Start(_ context.Context) error {
	host, port := parseRedisAddr(m.redisAddr)
	m.storage = redis.New(redis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 50,
	})
	m.service = NewSnapshotCache(m.storage, m.prefix, m.ttl, m.logger)
	m.logger.Info("Cache plugin started",
		"redis", m.redisAddr,
		"prefix", m.prefix,
		"ttl", m.ttl.String())
	return nil
}

// Stop closes the Redis connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.service != nil {
		if err := m.service.Close(); err != nil {
			m.logger.Error("Failed to close cache connection", "error", err)
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	m.logger.Info("Cache plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Port returns the SnapshotCache used by consumers. It is nil before Start.
func (m *PluginModule) Port() SnapshotCache {
	return m.service
}

// Storage exposes the raw Redis storage, which also satisfies fiber.Storage.
func (m *PluginModule) Storage() *redis.Storage {
	return m.storage
}

// Health probes Redis with a read of a missing key.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.storage == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "storage not initialized",
		}
	}

	if _, err := m.storage.GetWithContext(ctx, "__health_check__"); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("health check failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.redisAddr,
			"prefix":     m.prefix,
			"ttl":        m.ttl.String(),
		},
	}
}

// parseRedisAddr splits "host:port", falling back to 127.0.0.1:6379.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
