package repository

import (
	"context"
	"database/sql"

	"github.com/latch-net/latch-be/internal/model"
)

type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (int, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type ICommandRepository interface {
	Create(ctx context.Context, record *model.CommandRecord) error
	GetByUserID(ctx context.Context, userID int) ([]*model.CommandRecord, error)
}

type IRepository interface {
	User() IUserRepository
	Command() ICommandRepository
}

type Repository struct {
	user    IUserRepository
	command ICommandRepository
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		user:    NewUserRepository(db),
		command: NewCommandRepository(db),
	}
}

func (r *Repository) User() IUserRepository {
	return r.user
}

func (r *Repository) Command() ICommandRepository {
	return r.command
}
