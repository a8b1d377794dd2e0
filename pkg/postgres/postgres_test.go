package postgres

import (
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	cfg := DB{
		Host:     "db",
		Port:     5432,
		Username: "salones",
		Password: "p@ss word",
		NameDB:   "salones",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://salones:p%40ss%20word@db:5432/salones?sslmode=disable", cfg.DSN())

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	require.NoError(t, err)
	require.Equal(t, "p@ss word", poolCfg.ConnConfig.Password)
	require.Equal(t, "salones", poolCfg.ConnConfig.Database)
}

func TestDB_PasswordNotPrinted(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(DB{Host: "db", Username: "salones", Password: "s3cr3t-db"})
	require.NoError(t, err)
	require.NotContains(t, string(b), "s3cr3t-db")
	require.Contains(t, string(b), `"Host":"db"`)
}

func TestMigrationHandleFromPoolConfig(t *testing.T) {
	t.Parallel()
	cfg := DB{Host: "db", Port: 5432, Username: "salones", NameDB: "salones", SSLMode: "disable"}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	require.NoError(t, err)

	db := stdlib.OpenDB(*poolCfg.ConnConfig)
	require.NotNil(t, db.Driver())
	require.Zero(t, db.Stats().OpenConnections)
	require.NoError(t, db.Close())
}
