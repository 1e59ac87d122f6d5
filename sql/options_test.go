package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Options(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantAssert func(*testing.T, *config)
	}{
		{
			name: "given no options, then leaves every field empty",
			opts: nil,
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, &config{}, cfg)
			},
		},
		{
			name: "given WithDBSystem, then sets DBSystem",
			opts: []Option{WithDBSystem("postgresql")},
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, "postgresql", cfg.DBSystem)
			},
		},
		{
			name: "given WithDBName, then sets DBName",
			opts: []Option{WithDBName("mydb")},
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, "mydb", cfg.DBName)
			},
		},
		{
			name: "given WithInstanceName, then sets InstanceName",
			opts: []Option{WithInstanceName("primary")},
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, "primary", cfg.InstanceName)
			},
		},
		{
			name: "given multiple options, then applies all",
			opts: []Option{
				WithDBSystem("mysql"),
				WithDBName("users"),
				WithInstanceName("replica"),
			},
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, "mysql", cfg.DBSystem)
				assert.Equal(t, "users", cfg.DBName)
				assert.Equal(t, "replica", cfg.InstanceName)
			},
		},
		{
			name: "given repeated option, then last one wins",
			opts: []Option{WithDBName("first"), WithDBName("second")},
			wantAssert: func(t *testing.T, cfg *config) {
				assert.Equal(t, "second", cfg.DBName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(tt.opts...)
			require.NotNil(t, cfg)
			tt.wantAssert(t, cfg)
		})
	}
}

func TestConnectionInfo_Attributes(t *testing.T) {
	tests := []struct {
		name         string
		opts         []Option
		wantCount    int
		wantContains map[string]string
	}{
		{
			name:      "given all options, then returns all attributes",
			opts:      []Option{WithDBSystem("postgresql"), WithDBName("testdb"), WithInstanceName("primary")},
			wantCount: 3,
			wantContains: map[string]string{
				"db.system":   "postgresql",
				"db.name":     "testdb",
				"db.instance": "primary",
			},
		},
		{
			name:         "given no options, then returns empty slice",
			opts:         nil,
			wantCount:    0,
			wantContains: map[string]string{},
		},
		{
			name:      "given only DBSystem, then returns one attribute",
			opts:      []Option{WithDBSystem("mysql")},
			wantCount: 1,
			wantContains: map[string]string{
				"db.system": "mysql",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newTestConn(nil, nil, tt.opts...)

			attrs := conn.Info().attributes()
			assert.Len(t, attrs, tt.wantCount)

			attrMap := make(map[string]string)
			for _, attr := range attrs {
				attrMap[string(attr.Key)] = attr.Value.AsString()
			}
			for key, wantValue := range tt.wantContains {
				assert.Equal(t, wantValue, attrMap[key], "attribute %s", key)
			}
		})
	}
}
