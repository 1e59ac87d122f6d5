package sql

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/kroma-labs/sqllog-go/sql/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// plainStmt exposes only the driver.Stmt methods of the wrapped statement.
type plainStmt struct {
	driver.Stmt
}

func TestNewStmt(t *testing.T) {
	t.Run("given stmt, conn and query, then creates wrapped statement", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		conn := newTestConn(mocks.NewDriverConn(t), nil, WithDBSystem("postgresql"))
		query := "SELECT * FROM users"

		stmt := newStmt(conn, mockStmt, query)

		require.NotNil(t, stmt)
		assert.Equal(t, mockStmt, stmt.Raw())
		assert.Equal(t, conn, stmt.conn)
		assert.Equal(t, query, stmt.query)
	})
}

func TestStmt_Close(t *testing.T) {
	t.Run("given stmt, then closes underlying stmt without reporting", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockStmt.EXPECT().Close().Return(nil)
		hooks := &recordingHooks{}

		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), mockStmt, "SELECT 1")

		assert.NoError(t, stmt.Close())
		assert.Empty(t, hooks.Calls())
	})
}

func TestStmt_NumInput(t *testing.T) {
	t.Run("given stmt, then returns numInput from underlying stmt", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockStmt.EXPECT().NumInput().Return(2)

		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), nil), mockStmt, "SELECT 1")

		assert.Equal(t, 2, stmt.NumInput())
	})
}

func TestStmt_ExecContext(t *testing.T) {
	type args struct {
		query    string
		stmtArgs []driver.NamedValue
	}

	tests := []struct {
		name       string
		args       args
		mockFn     func(*mocks.DriverStmt, *mocks.DriverResult)
		wantErr    error
		wantParams Params
	}{
		{
			name: "given successful exec, then reports command once",
			args: args{
				query:    "INSERT INTO users (name) VALUES ($1)",
				stmtArgs: []driver.NamedValue{{Ordinal: 1, Value: "test"}},
			},
			mockFn: func(stmt *mocks.DriverStmt, result *mocks.DriverResult) {
				stmt.EXPECT().
					ExecContext(mock.Anything, mock.Anything).
					Return(result, nil)
			},
			wantParams: Params{{Name: "$1", Value: "test"}},
		},
		{
			name: "given exec error, then reports and returns the same error",
			args: args{
				query:    "INSERT INTO users (name) VALUES ($1)",
				stmtArgs: []driver.NamedValue{{Ordinal: 1, Value: nil}},
			},
			mockFn: func(stmt *mocks.DriverStmt, _ *mocks.DriverResult) {
				stmt.EXPECT().
					ExecContext(mock.Anything, mock.Anything).
					Return(nil, assert.AnError)
			},
			wantErr:    assert.AnError,
			wantParams: Params{{Name: "$1", Value: nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStmt := mocks.NewDriverStmt(t)
			mockResult := mocks.NewDriverResult(t)
			tt.mockFn(mockStmt, mockResult)
			hooks := &recordingHooks{}
			stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), mockStmt, tt.args.query)

			result, err := stmt.ExecContext(context.Background(), tt.args.stmtArgs)

			assert.Equal(t, tt.wantErr, err)
			if err == nil {
				assert.Equal(t, mockResult, result)
			}

			calls := hooks.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, CommandExec, calls[0].kind)
			assert.Equal(t, tt.args.query, calls[0].text)
			assert.Equal(t, tt.wantParams, calls[0].params)
			assert.Equal(t, testValue, calls[0].value)
			assert.True(t, calls[0].prepared)
			assert.Equal(t, tt.wantErr, calls[0].err)
		})
	}
}

func TestStmt_QueryContext(t *testing.T) {
	tests := []struct {
		name    string
		mockFn  func(*mocks.DriverStmt, *mocks.DriverRows)
		wantErr error
	}{
		{
			name: "given successful query, then returns rows",
			mockFn: func(stmt *mocks.DriverStmt, rows *mocks.DriverRows) {
				stmt.EXPECT().
					QueryContext(mock.Anything, mock.Anything).
					Return(rows, nil)
			},
		},
		{
			name: "given query error, then returns the same error",
			mockFn: func(stmt *mocks.DriverStmt, _ *mocks.DriverRows) {
				stmt.EXPECT().
					QueryContext(mock.Anything, mock.Anything).
					Return(nil, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStmt := mocks.NewDriverStmt(t)
			mockRows := mocks.NewDriverRows(t)
			tt.mockFn(mockStmt, mockRows)
			hooks := &recordingHooks{}
			stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), mockStmt, "SELECT * FROM users WHERE id = @id")

			rows, err := stmt.QueryContext(context.Background(), []driver.NamedValue{
				{Name: "@id", Ordinal: 1, Value: int64(7)},
			})

			assert.Equal(t, tt.wantErr, err)
			if err == nil {
				assert.Equal(t, mockRows, rows)
			}

			calls := hooks.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, CommandQuery, calls[0].kind)
			assert.Equal(t, Params{{Name: "@id", Value: int64(7)}}, calls[0].params)
			assert.Equal(t, tt.wantErr, calls[0].err)
		})
	}
}

func TestStmt_Legacy(t *testing.T) {
	t.Run("given legacy Exec, then reports positional parameters", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockResult := mocks.NewDriverResult(t)
		mockStmt.EXPECT().Exec([]driver.Value{"a", int64(2)}).Return(mockResult, nil)
		hooks := &recordingHooks{}
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), mockStmt, "UPDATE t SET a = ? WHERE b = ?")

		_, err := stmt.Exec([]driver.Value{"a", int64(2)}) //nolint:staticcheck // testing the legacy method

		require.NoError(t, err)
		calls := hooks.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, Params{{Name: "$1", Value: "a"}, {Name: "$2", Value: int64(2)}}, calls[0].params)
	})

	t.Run("given legacy Query error, then reports and returns it", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockStmt.EXPECT().Query([]driver.Value{}).Return(nil, assert.AnError)
		hooks := &recordingHooks{}
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), mockStmt, "SELECT 1")

		rows, err := stmt.Query([]driver.Value{}) //nolint:staticcheck // testing the legacy method

		assert.Nil(t, rows)
		assert.ErrorIs(t, err, assert.AnError)
		require.Len(t, hooks.Calls(), 1)
		assert.Equal(t, CommandQuery, hooks.Calls()[0].kind)
	})

	t.Run("given stmt without context methods, then ExecContext falls back to Exec", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockResult := mocks.NewDriverResult(t)
		mockStmt.EXPECT().Exec([]driver.Value{"x"}).Return(mockResult, nil)
		hooks := &recordingHooks{}
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), plainStmt{mockStmt}, "SELECT ?")

		_, err := stmt.ExecContext(context.Background(), []driver.NamedValue{{Ordinal: 1, Value: "x"}})

		require.NoError(t, err)
		assert.Len(t, hooks.Calls(), 1)
	})

	t.Run("given stmt without context methods, then QueryContext falls back to Query", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockRows := mocks.NewDriverRows(t)
		mockStmt.EXPECT().Query([]driver.Value{"x"}).Return(mockRows, nil)
		hooks := &recordingHooks{}
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), hooks), plainStmt{mockStmt}, "SELECT ?")

		rows, err := stmt.QueryContext(context.Background(), []driver.NamedValue{{Ordinal: 1, Value: "x"}})

		require.NoError(t, err)
		assert.Equal(t, mockRows, rows)
		assert.Len(t, hooks.Calls(), 1)
	})
}

func TestStmt_CheckNamedValue(t *testing.T) {
	t.Run("given stmt and conn without checker, then returns driver.ErrSkip", func(t *testing.T) {
		conn := newTestConn(plainConn{mocks.NewDriverConn(t)}, nil)
		stmt := newStmt(conn, plainStmt{mocks.NewDriverStmt(t)}, "SELECT 1")

		assert.Equal(t, driver.ErrSkip, stmt.CheckNamedValue(&driver.NamedValue{Value: 1}))
	})
}

func TestStmt_HookPanic(t *testing.T) {
	t.Run("given hook panicking after failure, then panics with HookPanicError", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockStmt.EXPECT().ExecContext(mock.Anything, mock.Anything).Return(nil, assert.AnError)
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), panickingHooks{}), mockStmt, "SELECT 1")

		defer func() {
			r := recover()
			require.IsType(t, &HookPanicError{}, r)
			hpe := r.(*HookPanicError)
			assert.Equal(t, "hook failure", hpe.Value)
			assert.ErrorIs(t, hpe, assert.AnError)
		}()
		_, _ = stmt.ExecContext(context.Background(), nil)
		t.Fatal("expected panic")
	})

	t.Run("given hook panicking after success, then propagates the hook panic", func(t *testing.T) {
		mockStmt := mocks.NewDriverStmt(t)
		mockResult := mocks.NewDriverResult(t)
		mockStmt.EXPECT().ExecContext(mock.Anything, mock.Anything).Return(mockResult, nil)
		stmt := newStmt(newTestConn(mocks.NewDriverConn(t), panickingHooks{}), mockStmt, "SELECT 1")

		assert.PanicsWithValue(t, "hook failure", func() {
			_, _ = stmt.ExecContext(context.Background(), nil)
		})
	})
}
