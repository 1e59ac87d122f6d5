package sql

import "database/sql/driver"

//go:generate mockery --name "Driver(Conn|Connector|Stmt|Tx|Result|Rows)" --output ./mocks --with-expecter

// DriverConn is the full capability set a Conn probes for on the inner
// connection. Inner connections may implement any subset of it.
type DriverConn interface {
	driver.Conn
	driver.ConnPrepareContext
	driver.ConnBeginTx
	driver.ExecerContext
	driver.QueryerContext
	driver.Pinger
}

// DriverConnector is the inner connector wrapped by a Connector.
type DriverConnector interface {
	driver.Connector
}

// DriverStmt is the full capability set a Stmt probes for on the inner
// statement.
type DriverStmt interface {
	driver.Stmt
	driver.StmtExecContext
	driver.StmtQueryContext
}

// DriverTx is the inner transaction wrapped by a Tx.
type DriverTx interface {
	driver.Tx
}

// DriverResult is what exec commands return.
type DriverResult interface {
	driver.Result
}

// DriverRows is what query commands return.
type DriverRows interface {
	driver.Rows
}
