package user

import "context"

// Repository defines the interface for user data storage.
type Repository interface {
	// CreateUser inserts u and fills in its ID and CreatedAt.
	CreateUser(ctx context.Context, u *User) error
	GetUserByName(ctx context.Context, name string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListUsersByName(ctx context.Context, name string) ([]*User, error)
	UpdateUser(ctx context.Context, id int64, upd Update) error
	DeleteUser(ctx context.Context, id int64) error
}
