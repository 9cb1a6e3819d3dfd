package postgres

import (
	"example.com/shop/internal/domain/user"
)

const PoolSize = 10

type PostgresUserRepository struct {
	dsn string
}

func (r *PostgresUserRepository) FindByID(id string) (*user.User, error) {
	return nil, nil
}

func (r *PostgresUserRepository) Save(u *user.User) error {
	return nil
}
