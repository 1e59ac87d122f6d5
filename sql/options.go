package sql

// config holds the settings shared by every decorator created from one
// Driver or Connector. It is read-only after construction.
type config struct {
	// DBSystem identifies the database management system (DBMS) product.
	// Examples: "postgresql", "mysql", "sqlite", "mssql", "oracle"
	DBSystem string

	// DBName is the name of the database being accessed.
	DBName string

	// InstanceName identifies a specific database connection instance,
	// such as "primary" or "replica" in a primary/replica setup.
	InstanceName string
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures the decorators.
type Option func(*config)

// WithDBSystem sets the database system identifier (DBMS product).
// It is exposed to hooks through ConnectionInfo.DBSystem.
//
// Common values:
//   - "postgresql" - PostgreSQL
//   - "mysql" - MySQL
//   - "sqlite" - SQLite
//   - "mssql" - Microsoft SQL Server
//
// Example:
//
//	db, _ := sqllog.Open("postgres", dsn, hooks, nil,
//	    sqllog.WithDBSystem("postgresql"),
//	)
func WithDBSystem(system string) Option {
	return func(cfg *config) {
		cfg.DBSystem = system
	}
}

// WithDBName sets the database name being accessed.
func WithDBName(name string) Option {
	return func(cfg *config) {
		cfg.DBName = name
	}
}

// WithInstanceName sets an identifier for this specific database connection.
//
// Use this to distinguish between multiple connections to the SAME database,
// such as:
//   - Primary/replica setups: "primary", "replica-1"
//   - Read/write splits: "read", "write"
//   - Sharded databases: "shard-0", "shard-1"
func WithInstanceName(name string) Option {
	return func(cfg *config) {
		cfg.InstanceName = name
	}
}
