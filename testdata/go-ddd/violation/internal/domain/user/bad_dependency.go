package user

import "example.com/shop/internal/infrastructure/postgres"

func WarmCache() int {
	return postgres.PoolSize
}
