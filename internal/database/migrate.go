package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/iliyamo/clinic-management/internal/utils"
)

// schema holds the DDL executed at startup.  CREATE TABLE IF NOT EXISTS
// keeps restarts idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(64)  NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(16)  NOT NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS patients (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(128) NOT NULL,
		age        INT          NOT NULL,
		sex        VARCHAR(8)   NOT NULL,
		phone      VARCHAR(32)  NOT NULL DEFAULT '',
		weight     DOUBLE       NOT NULL,
		height     DOUBLE       NOT NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		patient_id   BIGINT UNSIGNED NOT NULL,
		dietitian_id BIGINT UNSIGNED NOT NULL,
		date         DATETIME NOT NULL,
		notes        TEXT     NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_appointments_dietitian (dietitian_id),
		CONSTRAINT fk_appointments_patient   FOREIGN KEY (patient_id)   REFERENCES patients (id),
		CONSTRAINT fk_appointments_dietitian FOREIGN KEY (dietitian_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin inserts the default admin account on first run.  The password
// comes from ADMIN_PASSWORD (falling back to admin123) and is only applied
// when no "admin" row exists; later starts never overwrite it.
func SeedAdmin(ctx context.Context, db *sql.DB, password string, bcryptCost int) error {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, "admin").Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'admin')`,
		"admin", hash)
	if err != nil {
		return err
	}
	log.Println("seeded default admin account")
	return nil
}
