package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/internal/domain/repository"
)

const uniqueViolation = "23505"

const selectUser = `
	SELECT id, name, email, password_hash, role, profile_image, address, created_at, updated_at
	FROM users
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	addr, err := encodeAddress(u.Address)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, profile_image, address)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7::jsonb)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.ProfileImage, addr)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var (
		u            entity.User
		role         string
		profileImage pgtype.Text
		addr         []byte
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &profileImage, &addr, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Role = entity.Role(role)
	u.ProfileImage = profileImage.String
	if len(addr) > 0 {
		var a entity.Address
		if err := json.Unmarshal(addr, &a); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		u.Address = &a
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	return r.exec(ctx, &u.UpdatedAt, `
		UPDATE users
		SET name = $1, profile_image = NULLIF($2, ''), updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, u.Name, u.ProfileImage, u.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, nil, `
		UPDATE users SET password_hash = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`, passwordHash, id)
}

func (r *UserRepository) SetAddress(ctx context.Context, id string, addr *entity.Address) error {
	enc, err := encodeAddress(addr)
	if err != nil {
		return err
	}
	return r.exec(ctx, nil, `
		UPDATE users SET address = $1::jsonb, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`, enc, id)
}

// exec runs a single-row UPDATE ... RETURNING updated_at and maps "no row" to ErrNotFound.
func (r *UserRepository) exec(ctx context.Context, updatedAt any, query string, args ...any) error {
	var sink pgtype.Timestamptz
	dest := updatedAt
	if dest == nil {
		dest = &sink
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(dest); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// isInvalidText matches invalid_text_representation; a malformed uuid can never match a row.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// encodeAddress returns nil for a missing address so the column is stored as SQL NULL.
func encodeAddress(a *entity.Address) (*string, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	s := string(b)
	return &s, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
