package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/unclebandit/crm-backend/internal/errors"
    "github.com/unclebandit/crm-backend/internal/model"
)

// CustomerFilters narrows List. Zero values mean "no filter".
type CustomerFilters struct {
    Search     string
    CategoryID int
}

type CustomerRepositoryInterface interface {
    List(filters CustomerFilters) ([]*model.Customer, error)
    GetByID(id int) (*model.Customer, error)
    GetByReference(reference string, excludeID int) (*model.Customer, error)
    Create(c *model.Customer) error
    Update(c *model.Customer) error
    Delete(id int) error
}

type CustomerRepository struct {
    DB *sql.DB
}

const customerSelect = `
    SELECT c.id, c.name, c.reference, c.customer_category_id, c.start_date, c.description, c.created_at, c.updated_at,
           cat.name, COUNT(ct.id)
    FROM customers c
    LEFT JOIN customer_categories cat ON cat.id = c.customer_category_id
    LEFT JOIN contacts ct ON ct.customer_id = c.id
`

const customerGroupBy = `
    GROUP BY c.id, c.name, c.reference, c.customer_category_id, c.start_date, c.description, c.created_at, c.updated_at, cat.name
`

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
    c := &model.Customer{}
    var categoryName sql.NullString
    err := row.Scan(
        &c.ID, &c.Name, &c.Reference, &c.CustomerCategoryID,
        &c.StartDate, &c.Description, &c.CreatedAt, &c.UpdatedAt,
        &categoryName, &c.ContactsCount,
    )
    if err != nil {
        return nil, err
    }
    if categoryName.Valid && c.CustomerCategoryID != nil {
        c.Category = &model.CustomerCategory{ID: *c.CustomerCategoryID, Name: categoryName.String}
    }
    return c, nil
}

// List returns customers with category name and contact count attached.
// Search matches name OR reference case-insensitively; CategoryID narrows
// further with AND. Ordered by id for stable output.
func (r *CustomerRepository) List(filters CustomerFilters) ([]*model.Customer, error) {
    query := customerSelect + ` WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if filters.Search != "" {
        query += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.reference ILIKE $%d)", argPos, argPos)
        args = append(args, "%"+filters.Search+"%")
        argPos++
    }
    if filters.CategoryID != 0 {
        query += fmt.Sprintf(" AND c.customer_category_id=$%d", argPos)
        args = append(args, filters.CategoryID)
        argPos++
    }

    query += customerGroupBy + ` ORDER BY c.id ASC`

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    customers := []*model.Customer{}
    for rows.Next() {
        c, err := scanCustomer(rows)
        if err != nil {
            return nil, err
        }
        customers = append(customers, c)
    }
    return customers, rows.Err()
}

// GetByID fetches one customer with category and the full contact list
// loaded. Returns (nil, nil) when the id does not exist.
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
    query := customerSelect + ` WHERE c.id=$1` + customerGroupBy
    c, err := scanCustomer(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }

    contacts, err := r.loadContacts(id)
    if err != nil {
        return nil, err
    }
    c.Contacts = contacts
    c.ContactsCount = len(contacts)
    return c, nil
}

func (r *CustomerRepository) loadContacts(customerID int) ([]model.Contact, error) {
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

// GetByReference is the uniqueness probe. excludeID skips the row being
// updated; pass 0 on create. Returns (nil, nil) when no other row holds
// the reference.
func (r *CustomerRepository) GetByReference(reference string, excludeID int) (*model.Customer, error) {
    query := `SELECT id, name, reference FROM customers WHERE reference=$1`
    args := []interface{}{reference}
    if excludeID != 0 {
        query += ` AND id<>$2`
        args = append(args, excludeID)
    }

    var c model.Customer
    err := r.DB.QueryRow(query, args...).Scan(&c.ID, &c.Name, &c.Reference)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &c, nil
}

func (r *CustomerRepository) Create(c *model.Customer) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO customers (name, reference, customer_category_id, start_date, description, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
    err := r.DB.QueryRow(query, c.Name, c.Reference, c.CustomerCategoryID, c.StartDate, c.Description, c.CreatedAt).Scan(&c.ID)
    return translateConstraintError(err)
}

func (r *CustomerRepository) Update(c *model.Customer) error {
    query := `
        UPDATE customers
        SET name=$1, reference=$2, customer_category_id=$3, start_date=$4, description=$5, updated_at=NOW()
        WHERE id=$6
    `
    res, err := r.DB.Exec(query, c.Name, c.Reference, c.CustomerCategoryID, c.StartDate, c.Description, c.ID)
    if err != nil {
        return translateConstraintError(err)
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return appErrors.NewCustomerNotFound(c.ID)
    }
    return nil
}

// Delete removes the customer and all its contacts in one transaction.
func (r *CustomerRepository) Delete(id int) error {
    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }

    if _, err := tx.Exec(`DELETE FROM contacts WHERE customer_id=$1`, id); err != nil {
        tx.Rollback()
        return err
    }

    res, err := tx.Exec(`DELETE FROM customers WHERE id=$1`, id)
    if err != nil {
        tx.Rollback()
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        tx.Rollback()
        return err
    }
    if affected == 0 {
        tx.Rollback()
        return appErrors.NewCustomerNotFound(id)
    }

    return tx.Commit()
}

// translateConstraintError maps Postgres constraint failures to field
// errors. The services check uniqueness and category existence up front;
// this covers the race between check and write.
func translateConstraintError(err error) error {
    if err == nil {
        return nil
    }
    if pqErr, ok := err.(*pq.Error); ok {
        switch pqErr.Code.Name() {
        case "unique_violation":
            return appErrors.FieldError("reference", "The reference has already been taken.")
        case "foreign_key_violation":
            return appErrors.FieldError("customer_category_id", "The selected customer_category_id is invalid.")
        }
    }
    return err
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
