package model

import "time"

type Tenant struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID             int       `db:"id"`
	TenantID       int       `db:"tenant_id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           *string   `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
