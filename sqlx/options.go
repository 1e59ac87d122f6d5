package sqlx

import sqllog "github.com/kroma-labs/sqllog-go/sql"

// Option configures the instrumented pool. It is the sql package's Option,
// so options from either package can be mixed.
type Option = sqllog.Option

// WithDBSystem sets the database system identifier (DBMS product),
// e.g. "postgresql" or "mysql".
func WithDBSystem(system string) Option {
	return sqllog.WithDBSystem(system)
}

// WithDBName sets the database name being accessed.
func WithDBName(name string) Option {
	return sqllog.WithDBName(name)
}

// WithInstanceName sets an identifier for this specific database connection,
// such as "primary" or "replica".
func WithInstanceName(name string) Option {
	return sqllog.WithInstanceName(name)
}
