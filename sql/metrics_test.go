package sql

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/kroma-labs/sqllog-go/sql/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewMetrics(t *testing.T) {
	tests := []struct {
		name       string
		setup      func() *sdkmetric.MeterProvider
		wantErr    assert.ErrorAssertionFunc
		wantAssert func(*metrics) bool
	}{
		{
			name: "given valid meter, then creates metrics successfully",
			setup: func() *sdkmetric.MeterProvider {
				return sdkmetric.NewMeterProvider()
			},
			wantErr: assert.NoError,
			wantAssert: func(m *metrics) bool {
				return m != nil && m.queryDuration != nil && m.connectionDuration != nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := tt.setup()
			defer mp.Shutdown(context.Background())

			meter := mp.Meter("test")
			m, err := newMetrics(meter)

			if !tt.wantErr(t, err) {
				return
			}
			assert.True(t, tt.wantAssert(m))
		})
	}
}

func TestRecordQueryDuration(t *testing.T) {
	type args struct {
		duration  time.Duration
		operation string
		attrs     []attribute.KeyValue
		err       error
	}

	tests := []struct {
		name        string
		args        args
		wantMetrics bool
	}{
		{
			name: "given successful query, then records with ok status",
			args: args{
				duration:  100 * time.Millisecond,
				operation: "SELECT",
				attrs: []attribute.KeyValue{
					attribute.String("db.system", "postgresql"),
				},
				err: nil,
			},
			wantMetrics: true,
		},
		{
			name: "given failed query, then records with error status",
			args: args{
				duration:  50 * time.Millisecond,
				operation: "INSERT",
				attrs: []attribute.KeyValue{
					attribute.String("db.system", "mysql"),
				},
				err: assert.AnError,
			},
			wantMetrics: true,
		},
		{
			name: "given empty operation, then records without operation attribute",
			args: args{
				duration:  10 * time.Millisecond,
				operation: "",
				attrs:     []attribute.KeyValue{},
				err:       nil,
			},
			wantMetrics: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			reader := sdkmetric.NewManualReader()
			mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			defer mp.Shutdown(context.Background())

			meter := mp.Meter("test")
			m, err := newMetrics(meter)
			require.NoError(t, err)

			// Execute
			ctx := context.Background()
			m.recordQueryDuration(
				ctx,
				tt.args.duration,
				tt.args.operation,
				tt.args.attrs,
				tt.args.err,
			)

			// Verify
			var rm metricdata.ResourceMetrics
			err = reader.Collect(ctx, &rm)
			require.NoError(t, err)

			if tt.wantMetrics {
				// Should have recorded metrics
				assert.NotEmpty(t, rm.ScopeMetrics)
			}
		})
	}
}

func TestRecordQueryDuration_NilMetrics(t *testing.T) {
	t.Run("given nil metrics, then does not panic", func(t *testing.T) {
		var m *metrics

		// Should not panic
		assert.NotPanics(t, func() {
			m.recordQueryDuration(context.Background(), time.Second, "SELECT", nil, nil)
		})
	})
}

func TestRecordQueryDuration_NilHistogram(t *testing.T) {
	t.Run("given nil histogram, then does not panic", func(t *testing.T) {
		m := &metrics{queryDuration: nil}

		// Should not panic
		assert.NotPanics(t, func() {
			m.recordQueryDuration(context.Background(), time.Second, "SELECT", nil, nil)
		})
	})
}

func TestRecordConnectionDuration(t *testing.T) {
	tests := []struct {
		name       string
		event      string
		err        error
		wantStatus string
	}{
		{
			name:       "given successful open, then records ok status",
			event:      "open",
			wantStatus: "ok",
		},
		{
			name:       "given failed close, then records error status",
			event:      "close",
			err:        assert.AnError,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := sdkmetric.NewManualReader()
			mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
			defer mp.Shutdown(context.Background())

			m, err := newMetrics(mp.Meter("test"))
			require.NoError(t, err)

			ctx := context.Background()
			m.recordConnectionDuration(ctx, 5*time.Millisecond, tt.event, nil, tt.err)

			var rm metricdata.ResourceMetrics
			require.NoError(t, reader.Collect(ctx, &rm))

			hist := findHistogram(t, rm, "db.client.connection.duration")
			require.Len(t, hist.DataPoints, 1)
			dp := hist.DataPoints[0]
			assert.Equal(t, uint64(1), dp.Count)

			event, ok := dp.Attributes.Value("db.connection.event")
			require.True(t, ok)
			assert.Equal(t, tt.event, event.AsString())
			status, ok := dp.Attributes.Value("status")
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, status.AsString())
		})
	}
}

func TestRecordConnectionDuration_NilMetrics(t *testing.T) {
	t.Run("given nil metrics, then does not panic", func(t *testing.T) {
		var m *metrics

		assert.NotPanics(t, func() {
			m.recordConnectionDuration(context.Background(), time.Second, "open", nil, nil)
		})
	})
}

func TestMetricsHook(t *testing.T) {
	t.Run("given hook events, then records command and connection histograms", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer mp.Shutdown(context.Background())

		hook, err := NewMetricsHook[string](WithMeterProvider(mp))
		require.NoError(t, err)

		ctx := context.Background()
		conn := newTestConn(nil, hook, WithDBSystem("postgresql"), WithDBName("testdb"))
		cmd := newCommand(conn, CommandExec, "INSERT INTO t VALUES ($1)", []driver.NamedValue{{Ordinal: 1, Value: 1}}, true)

		hook.ConnectionOpened(ctx, conn, testValue, time.Millisecond, nil)
		hook.CommandExecuted(ctx, cmd, testValue, 2*time.Millisecond, nil)
		hook.CommandExecuted(ctx, cmd, testValue, 3*time.Millisecond, assert.AnError)
		hook.ConnectionClosed(ctx, conn, testValue, time.Millisecond, nil)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))

		commands := findHistogram(t, rm, "db.client.operation.duration")
		assert.Len(t, commands.DataPoints, 2, "one series per status")
		for _, dp := range commands.DataPoints {
			op, ok := dp.Attributes.Value("db.operation")
			require.True(t, ok)
			assert.Equal(t, "INSERT", op.AsString())
			system, ok := dp.Attributes.Value("db.system")
			require.True(t, ok)
			assert.Equal(t, "postgresql", system.AsString())
		}

		connections := findHistogram(t, rm, "db.client.connection.duration")
		assert.Len(t, connections.DataPoints, 2, "one series per event")
	})
}

func TestRecordPoolMetrics(t *testing.T) {
	t.Run("given pool opened through the package, then reports pool gauges with its attributes", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer mp.Shutdown(context.Background())

		inner := mocks.NewDriverConnector(t)
		inner.EXPECT().Driver().Return(&testDriver{})
		db := OpenDB[string](inner, nil, nil, WithDBSystem("postgresql"), WithInstanceName("primary"))
		t.Cleanup(func() { db.Close() })
		db.SetMaxOpenConns(7)

		require.NoError(t, RecordPoolMetrics(db, mp.Meter("test")))

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))

		var found bool
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "db.client.connections.max" {
					continue
				}
				gauge, ok := m.Data.(metricdata.Gauge[int64])
				require.True(t, ok)
				require.Len(t, gauge.DataPoints, 1)
				assert.Equal(t, int64(7), gauge.DataPoints[0].Value)
				instance, ok := gauge.DataPoints[0].Attributes.Value("db.instance")
				require.True(t, ok)
				assert.Equal(t, "primary", instance.AsString())
				found = true
			}
		}
		assert.True(t, found, "db.client.connections.max not reported")
	})
}

// findHistogram returns the float64 histogram with the given name.
func findHistogram(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				hist, ok := m.Data.(metricdata.Histogram[float64])
				require.True(t, ok, "metric %s is not a float64 histogram", name)
				return hist
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return metricdata.Histogram[float64]{}
}
