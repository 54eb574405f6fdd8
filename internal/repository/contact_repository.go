package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/crm-backend/internal/model"
)

type ContactRepositoryInterface interface {
    ListByCustomer(customerID int) ([]model.Contact, error)
    GetByID(id int) (*model.Contact, error)
    Create(ct *model.Contact) error
    Update(ct *model.Contact) error
    Delete(id int) error
}

type ContactRepository struct {
    DB *sql.DB
}

func (r *ContactRepository) ListByCustomer(customerID int) ([]model.Contact, error) {
    rows, err := r.DB.Query(`
        SELECT id, customer_id, first_name, last_name, created_at, updated_at
        FROM contacts
        WHERE customer_id=$1
        ORDER BY id ASC
    `, customerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    contacts := []model.Contact{}
    for rows.Next() {
        var ct model.Contact
        if err := rows.Scan(&ct.ID, &ct.CustomerID, &ct.FirstName, &ct.LastName, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
            return nil, err
        }
        contacts = append(contacts, ct)
    }
    return contacts, rows.Err()
}

// GetByID returns (nil, nil) when the contact does not exist.
func (r *ContactRepository) GetByID(id int) (*model.Contact, error) {
    var ct model.Contact
    err := r.DB.QueryRow(`
        SELECT id, customer_id, first_name, last_name, created_at, updated_at
        FROM contacts
        WHERE id=$1
    `, id).Scan(&ct.ID, &ct.CustomerID, &ct.FirstName, &ct.LastName, &ct.CreatedAt, &ct.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &ct, nil
}

func (r *ContactRepository) Create(ct *model.Contact) error {
    ct.CreatedAt = time.Now()
    query := `
        INSERT INTO contacts (customer_id, first_name, last_name, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
    return r.DB.QueryRow(query, ct.CustomerID, ct.FirstName, ct.LastName, ct.CreatedAt).Scan(&ct.ID)
}

// Update never touches customer_id; contacts do not move between customers.
func (r *ContactRepository) Update(ct *model.Contact) error {
    query := `
        UPDATE contacts
        SET first_name=$1, last_name=$2, updated_at=NOW()
        WHERE id=$3
    `
    _, err := r.DB.Exec(query, ct.FirstName, ct.LastName, ct.ID)
    return err
}

func (r *ContactRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM contacts WHERE id=$1`, id)
    return err
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
