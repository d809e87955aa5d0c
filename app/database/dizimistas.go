package database

import (
	"context"
	"database/sql"
	"errors"

	"aparecida-web/app/models"

	"github.com/google/uuid"
)

const dizimistaColumns = `id, full_name, birthdate, available_sex, available_state, phone, address, community, created_at`

func scanDizimista(s scanner) (*models.Dizimista, error) {
	d := &models.Dizimista{}
	if err := s.Scan(&d.ID, &d.FullName, &d.Birthdate, &d.AvailableSex, &d.AvailableState,
		&d.Phone, &d.Address, &d.Community, &d.CreatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDizimista stores d with a fresh id and server-assigned createdAt.
func CreateDizimista(ctx context.Context, db *DB, d *models.Dizimista) error {
	d.ID = uuid.New().String()
	d.CreatedAt = now()

	_, err := db.exec(ctx, `INSERT INTO dizimistas (`+dizimistaColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.FullName, d.Birthdate, d.AvailableSex, d.AvailableState,
		d.Phone, d.Address, d.Community, d.CreatedAt)
	return err
}

// GetDizimistas lists donors newest first.
func GetDizimistas(ctx context.Context, db *DB) ([]*models.Dizimista, error) {
	rows, err := db.query(ctx, `SELECT `+dizimistaColumns+` FROM dizimistas ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dizimistas := []*models.Dizimista{}
	for rows.Next() {
		d, err := scanDizimista(rows)
		if err != nil {
			return nil, err
		}
		dizimistas = append(dizimistas, d)
	}
	return dizimistas, rows.Err()
}

func GetDizimistaByID(ctx context.Context, db *DB, id string) (*models.Dizimista, error) {
	d, err := scanDizimista(db.queryRow(ctx, `SELECT `+dizimistaColumns+` FROM dizimistas WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

func UpdateDizimista(ctx context.Context, db *DB, d *models.Dizimista) error {
	res, err := db.exec(ctx, `UPDATE dizimistas SET full_name = ?, birthdate = ?, available_sex = ?,
		available_state = ?, phone = ?, address = ?, community = ? WHERE id = ?`,
		d.FullName, d.Birthdate, d.AvailableSex, d.AvailableState, d.Phone, d.Address, d.Community, d.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func DeleteDizimista(ctx context.Context, db *DB, id string) error {
	return db.deleteByID(ctx, "dizimistas", id)
}

func CountDizimistas(ctx context.Context, db *DB) (int, error) {
	var n int
	err := db.queryRow(ctx, `SELECT COUNT(*) FROM dizimistas`).Scan(&n)
	return n, err
}
