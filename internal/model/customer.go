package model

import "time"

type Customer struct {
    ID                 int        `db:"id" json:"id"`
    Name               string     `db:"name" json:"name"`
    Reference          string     `db:"reference" json:"reference"`
    CustomerCategoryID *int       `db:"customer_category_id" json:"customer_category_id,omitempty"`
    StartDate          *time.Time `db:"start_date" json:"start_date,omitempty"`
    Description        *string    `db:"description" json:"description,omitempty"`
    CreatedAt          time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt          *time.Time `db:"updated_at" json:"updated_at,omitempty"`

    // Eagerly loaded relations. Repositories populate these up front;
    // nothing triggers a query on attribute access.
    Category      *CustomerCategory `json:"-"`
    Contacts      []Contact         `json:"-"`
    ContactsCount int               `json:"-"`
}
