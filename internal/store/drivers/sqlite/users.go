package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hajorau/saveenergy/internal/domain"
	"github.com/hajorau/saveenergy/internal/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, first_name, last_name, organization, phone, created_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, organization, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Email,
		u.PasswordHash,
		mapStringNull(u.FirstName),
		mapStringNull(u.LastName),
		mapStringNull(u.Organization),
		mapStringNull(u.Phone),
		time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *usersRepo) DeleteAllUsers(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                               domain.User
		firstName, lastName, org, phone sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&firstName,
		&lastName,
		&org,
		&phone,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.FirstName = mapNullString(firstName)
	u.LastName = mapNullString(lastName)
	u.Organization = mapNullString(org)
	u.Phone = mapNullString(phone)
	return u, nil
}
