package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bagoloot/bagoloot/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

var DB *gorm.DB

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflict")
)

func ConnectDatabase(driver, dsn string) error {
	dialector, err := openDialector(driver, dsn)

	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	return nil
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(sqliteDSN(dsn)), nil
	case "postgres", "postgresql":
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open a database connection: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil
	case "mysql":
		conn, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open a database connection: %w", err)
		}
		return mysql.New(mysql.Config{Conn: conn}), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", driver)
	}
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_foreign_keys=on"
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Child{},
		&models.Toy{},
		&models.Reindeer{},
		&models.FavoriteReindeer{},
	}

	for _, model := range models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Exists reports whether a row of model's table has the given primary key.
func Exists(model interface{}, id uint) (bool, error) {
	var count int64

	if err := DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
