package models

type Order struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	Total  int64 `db:"total_cents"`
}
