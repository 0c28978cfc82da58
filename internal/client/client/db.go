package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/blogit/internal/client/config"
	"github.com/dmitrijs2005/blogit/internal/client/migrations"
	"github.com/dmitrijs2005/blogit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogit/internal/filex"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenMetadataStore opens the durable key/value store selected by driver.
// The returned close function releases the underlying connection.
func OpenMetadataStore(ctx context.Context, driver, dsn, redisAddr string) (metadata.Repository, func() error, error) {
	switch driver {
	case config.StoreSQLite:
		db, err := InitDatabase(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite store: %w", err)
		}
		return metadata.NewSQLiteRepository(db), db.Close, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis store: %w", err)
		}
		return metadata.NewRedisRepository(rdb, ""), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
