package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/dining-sim/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "u", DBPass: "p", DBHost: "db", DBPort: "3307", DBName: "sim"})
	mc, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "u", mc.User)
	assert.Equal(t, "p", mc.Passwd)
	assert.Equal(t, "db:3307", mc.Addr)
	assert.Equal(t, "sim", mc.DBName)
	assert.True(t, mc.ParseTime)
}
