package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/georgemunganga/retail-ordering/internal/apperr"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const selectUser = `
	SELECT user_id, name, password, latitude, longitude, type, created_at
	FROM users`

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, password, latitude, longitude, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.PasswordHash, u.Location.Latitude, u.Location.Longitude, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	return database.Classify(err)
}

func (r *postgresRepository) GetUserByName(ctx context.Context, name string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", name, database.Classify(err))
	}
	return u, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE user_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, database.Classify(err))
	}
	return u, nil
}

func (r *postgresRepository) ListUsersByName(ctx context.Context, name string) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` WHERE name = $1 ORDER BY user_id`, name)
	if err != nil {
		return nil, database.Classify(err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, database.Classify(err)
		}
		users = append(users, u)
	}
	return users, database.Classify(rows.Err())
}

// UpdateUser builds the SET clause from the non-nil fields of upd.
func (r *postgresRepository) UpdateUser(ctx context.Context, id int64, upd Update) error {
	if upd.Empty() {
		return fmt.Errorf("%w: nothing to update", apperr.ErrInvalidInput)
	}
	var sets []string
	var args []interface{}
	add := func(column string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.PasswordHash != nil {
		add("password", *upd.PasswordHash)
	}
	if upd.Location != nil {
		add("latitude", upd.Location.Latitude)
		add("longitude", upd.Location.Longitude)
	}
	if upd.Role != nil {
		add("type", *upd.Role)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.Classify(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return database.Classify(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.PasswordHash,
		&u.Location.Latitude,
		&u.Location.Longitude,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
