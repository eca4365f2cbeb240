package storage

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN_ForcesParseTimeAndFoundRows(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{name: "bare", dsn: "app:secret@tcp(localhost:3306)/workflows"},
		{name: "options switched off", dsn: "app:secret@tcp(localhost:3306)/workflows?parseTime=false&clientFoundRows=false"},
		{name: "other options kept", dsn: "app:secret@tcp(db:3306)/workflows?loc=UTC&timeout=5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDSN(tt.dsn)
			require.NoError(t, err)

			cfg, err := mysql.ParseDSN(got)
			require.NoError(t, err)
			assert.True(t, cfg.ParseTime)
			assert.True(t, cfg.ClientFoundRows)
			assert.Equal(t, "workflows", cfg.DBName)
			assert.Equal(t, "app", cfg.User)
		})
	}
}

func TestNormalizeDSN_KeepsTimeout(t *testing.T) {
	got, err := normalizeDSN("app:secret@tcp(db:3306)/workflows?timeout=5s")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(got)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "5s", cfg.Timeout.String())
}

func TestOpen_RejectsEmptyAndMalformedURLs(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "app:secret@tcp(db:3306)workflows")
	assert.ErrorContains(t, err, "parse database url")
}
