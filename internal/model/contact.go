package model

import "time"

type Contact struct {
    ID         int        `db:"id" json:"id"`
    CustomerID int        `db:"customer_id" json:"customer_id"`
    FirstName  string     `db:"first_name" json:"first_name"`
    LastName   *string    `db:"last_name" json:"last_name"`
    CreatedAt  time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
