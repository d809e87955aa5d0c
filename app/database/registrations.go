package database

import (
	"context"
	"database/sql"
	"errors"

	"aparecida-web/app/models"

	"github.com/google/uuid"
)

const registrationColumns = `id, form_type, name, phone, email, birthdate, birthplace, address,
	father_name, mother_name, community, schooling, is_baptized, special_needs,
	special_needs_details, available_day, term_name, group_participation,
	first_eucharist, marital_status, available_time, jesus_answer,
	godfather_name, godmother_name, available_locate, baptism_date,
	meeting_date, observations, created_at, updated_at`

func scanRegistration(s scanner) (*models.Registration, error) {
	r := &models.Registration{}
	err := s.Scan(
		&r.ID, &r.FormType, &r.Name, &r.Phone, &r.Email, &r.Birthdate, &r.Birthplace, &r.Address,
		&r.FatherName, &r.MotherName, &r.Community, &r.Schooling, &r.IsBaptized, &r.SpecialNeeds,
		&r.SpecialNeedsDetails, &r.AvailableDay, &r.TermName, &r.GroupParticipation,
		&r.FirstEucharist, &r.MaritalStatus, &r.AvailableTime, &r.JesusAnswer,
		&r.GodfatherName, &r.GodmotherName, &r.AvailableLocate, &r.BaptismDate,
		&r.MeetingDate, &r.Observations, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRegistration stores r with a fresh id and server-assigned createdAt.
// Any id or timestamps already on r are replaced.
func CreateRegistration(ctx context.Context, db *DB, r *models.Registration) error {
	r.ID = uuid.New().String()
	r.CreatedAt = now()
	r.UpdatedAt = 0

	query := `INSERT INTO registrations (` + registrationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.exec(ctx, query,
		r.ID, r.FormType, r.Name, r.Phone, r.Email, r.Birthdate, r.Birthplace, r.Address,
		r.FatherName, r.MotherName, r.Community, r.Schooling, r.IsBaptized, r.SpecialNeeds,
		r.SpecialNeedsDetails, r.AvailableDay, r.TermName, r.GroupParticipation,
		r.FirstEucharist, r.MaritalStatus, r.AvailableTime, r.JesusAnswer,
		r.GodfatherName, r.GodmotherName, r.AvailableLocate, r.BaptismDate,
		r.MeetingDate, r.Observations, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

// GetRegistrations lists registrations newest first. An empty formType
// returns every type.
func GetRegistrations(ctx context.Context, db *DB, formType models.FormType) ([]*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations`
	var args []any
	if formType != "" {
		query += ` WHERE form_type = ?`
		args = append(args, formType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := []*models.Registration{}
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, r)
	}
	return registrations, rows.Err()
}

func GetRegistrationByID(ctx context.Context, db *DB, id string) (*models.Registration, error) {
	row := db.queryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// UpdateRegistration rewrites the editable fields of an existing row and
// stamps updatedAt. id, formType and createdAt are left untouched.
func UpdateRegistration(ctx context.Context, db *DB, r *models.Registration) error {
	r.UpdatedAt = now()

	query := `UPDATE registrations SET
		name = ?, phone = ?, email = ?, birthdate = ?, birthplace = ?, address = ?,
		father_name = ?, mother_name = ?, community = ?, schooling = ?, is_baptized = ?,
		special_needs = ?, special_needs_details = ?, available_day = ?, term_name = ?,
		group_participation = ?, first_eucharist = ?, marital_status = ?, available_time = ?,
		jesus_answer = ?, godfather_name = ?, godmother_name = ?, available_locate = ?,
		baptism_date = ?, meeting_date = ?, observations = ?, updated_at = ?
		WHERE id = ?`

	res, err := db.exec(ctx, query,
		r.Name, r.Phone, r.Email, r.Birthdate, r.Birthplace, r.Address,
		r.FatherName, r.MotherName, r.Community, r.Schooling, r.IsBaptized,
		r.SpecialNeeds, r.SpecialNeedsDetails, r.AvailableDay, r.TermName,
		r.GroupParticipation, r.FirstEucharist, r.MaritalStatus, r.AvailableTime,
		r.JesusAnswer, r.GodfatherName, r.GodmotherName, r.AvailableLocate,
		r.BaptismDate, r.MeetingDate, r.Observations, r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func DeleteRegistration(ctx context.Context, db *DB, id string) error {
	return db.deleteByID(ctx, "registrations", id)
}

// CountRegistrationsByType returns a count for every known form type,
// including the ones with no rows.
func CountRegistrationsByType(ctx context.Context, db *DB) (map[models.FormType]int, error) {
	rows, err := db.query(ctx, `SELECT form_type, COUNT(*) FROM registrations GROUP BY form_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.FormType]int, len(models.FormTypes))
	for _, ft := range models.FormTypes {
		counts[ft] = 0
	}
	for rows.Next() {
		var ft models.FormType
		var n int
		if err := rows.Scan(&ft, &n); err != nil {
			return nil, err
		}
		counts[ft] = n
	}
	return counts, rows.Err()
}
