package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
)

const userColumns = `id, email, mobile, name, role, date_of_birth, gender, photo, address, details,
	password_hash, is_active, created_at`

func (s *Store) Register(ctx context.Context, reg *models.Registration) (user *models.User, err error) {
	start := time.Now()
	defer func() { observe(ctx, "registerUser", start, err) }()

	address, err := json.Marshal(reg.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to encode address: %w", err)
	}
	var details []byte
	if reg.Details != nil {
		if details, err = json.Marshal(reg.Details); err != nil {
			return nil, fmt.Errorf("failed to encode role details: %w", err)
		}
	}

	query := `
		INSERT INTO users (id, email, mobile, name, role, date_of_birth, gender, photo, address, details, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, query,
		uuid.NewString(),
		reg.Email,
		reg.Mobile,
		reg.Name,
		string(reg.Role),
		nilIfEmpty(reg.DateOfBirth),
		nilIfEmpty(reg.Gender),
		nilIfEmpty(reg.Photo),
		address,
		details,
		nilIfEmpty(reg.PasswordHash),
	)

	user, err = scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *Store) FindForLogin(ctx context.Context, identifier string, role models.Role) (user *models.User, err error) {
	start := time.Now()
	defer func() { observe(ctx, "loginUser", start, err) }()

	identifier = strings.TrimSpace(identifier)
	column := "mobile"
	if strings.Contains(identifier, "@") {
		column = "lower(email)"
		identifier = strings.ToLower(identifier)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 AND role = $2 AND is_active`
	user, err = scanUser(s.pool.QueryRow(ctx, query, identifier, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user *models.User, err error) {
	start := time.Now()
	defer func() { observe(ctx, "getUser", start, err) }()

	user, err = scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, role models.Role) (users []*models.User, err error) {
	start := time.Now()
	defer func() { observe(ctx, "listUsers", start, err) }()

	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE ($1 = '' OR role = $1) ORDER BY created_at`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan user: %w", scanErr)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u                  models.User
		role               string
		dob, gender, photo *string
		address, details   []byte
		passwordHash       *string
	)

	if err := row.Scan(&u.ID, &u.Email, &u.Mobile, &u.Name, &role, &dob, &gender, &photo,
		&address, &details, &passwordHash, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.Role = models.Role(role)
	u.DateOfBirth = deref(dob)
	u.Gender = deref(gender)
	u.Photo = deref(photo)
	u.PasswordHash = deref(passwordHash)

	if len(address) > 0 {
		var addr models.Address
		if err := json.Unmarshal(address, &addr); err != nil {
			return nil, fmt.Errorf("failed to decode address: %w", err)
		}
		u.Address = &addr
	}

	d, err := models.DecodeRoleDetails(u.Role, details)
	if err != nil {
		return nil, err
	}
	u.Details = d

	return &u, nil
}
