// Package sqlx opens jmoiron/sqlx databases on top of the instrumented
// connection pools of github.com/kroma-labs/sqllog-go/sql.
//
// Instrumentation happens at the driver level, so the returned *sqlx.DB is
// a plain sqlx database: Get, Select, NamedExec, transactions and prepared
// statements are all reported to the configured hooks without wrapper types.
//
// # Quick Start
//
//	import (
//	    sqllog "github.com/kroma-labs/sqllog-go/sql"
//	    sqllogx "github.com/kroma-labs/sqllog-go/sqlx"
//	)
//
//	hook, err := sqllog.NewLoggingHook[string](logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	db, err := sqllogx.Open("postgres", dsn, hook, sqllog.StaticValue("orders"),
//	    sqllogx.WithDBSystem("postgresql"),
//	    sqllogx.WithDBName("mydb"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// # Struct Scanning
//
//	type User struct {
//	    ID   int    `db:"id"`
//	    Name string `db:"name"`
//	}
//
//	var user User
//	err := db.GetContext(ctx, &user, "SELECT id, name FROM users WHERE id = $1", 1)
//
// # Named Parameters
//
// Named queries are bound by sqlx before they reach the driver, so hooks
// see the rebound command text and positional parameters:
//
//	_, err := db.NamedExecContext(ctx,
//	    "INSERT INTO users (name) VALUES (:name)",
//	    User{Name: "John"},
//	)
//	// reported as "INSERT INTO users (name) VALUES ($1)" with params [$1=?]
package sqlx
