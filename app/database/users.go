package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"aparecida-web/app/models"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned by CreateUser when the address is taken.
var ErrDuplicateEmail = errors.New("email already registered")

const userColumns = `id, email, password_hash, name, role, created_at`

func scanUser(s scanner) (*models.User, error) {
	u := &models.User{}
	if err := s.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser inserts u. u.Password must already hold a bcrypt hash.
func CreateUser(ctx context.Context, db *DB, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := GetUserByEmail(ctx, db, u.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	u.ID = uuid.New().String()
	u.CreatedAt = now()
	if u.Role == "" {
		u.Role = models.RoleStaff
	}

	_, err := db.exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.Name, u.Role, u.CreatedAt)
	return err
}

func GetUserByEmail(ctx context.Context, db *DB, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(db.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func GetUserByID(ctx context.Context, db *DB, id string) (*models.User, error) {
	u, err := scanUser(db.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// UpdateUserPassword replaces the stored bcrypt hash.
func UpdateUserPassword(ctx context.Context, db *DB, id, hash string) error {
	res, err := db.exec(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
