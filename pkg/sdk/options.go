package claimdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	user string

	defaultPageSize int
	maxPageSize     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster configures the client to connect to a Redis cluster.
func WithRedisCluster(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	})
}

// WithCredentials sets the database username and logical database number.
func WithCredentials(username string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.db = db
	})
}

// WithUser sets the acting user. All records read and written through the
// client belong to this user. Required.
func WithUser(userID string) Option {
	return optionFunc(func(c *clientConfig) {
		c.user = userID
	})
}

// WithPagination sets the default and maximum page sizes for filter
// operations. Defaults: 20 and 100.
func WithPagination(defaultPageSize, maxPageSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultPageSize
		c.maxPageSize = maxPageSize
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
