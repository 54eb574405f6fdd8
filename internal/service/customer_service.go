// internal/service/customer_service.go
package service

import (
    "log"
    "time"
    "unicode/utf8"

    appErrors "github.com/unclebandit/crm-backend/internal/errors"
    "github.com/unclebandit/crm-backend/internal/model"
    "github.com/unclebandit/crm-backend/internal/queue"
    "github.com/unclebandit/crm-backend/internal/repository"
)

const startDateLayout = "2006-01-02"

// CustomerInput is the decoded body of a create or replace request.
type CustomerInput struct {
    Name               string  `json:"name"`
    Reference          string  `json:"reference"`
    CustomerCategoryID *int    `json:"customer_category_id"`
    StartDate          *string `json:"start_date"`
    Description        *string `json:"description"`
}

type CustomerService struct {
    CustomerRepo repository.CustomerRepositoryInterface
    CategoryRepo repository.CategoryRepositoryInterface
    Queue        queue.Queue
}

// ListCustomers fetches customers matching the filters, with category
// names and contact counts attached.
func (s *CustomerService) ListCustomers(filters repository.CustomerFilters) ([]*model.Customer, error) {
    return s.CustomerRepo.List(filters)
}

// GetCustomer fetches one customer with its contact list loaded.
func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
    customer, err := s.CustomerRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if customer == nil {
        return nil, appErrors.NewCustomerNotFound(id)
    }
    return customer, nil
}

func (s *CustomerService) CreateCustomer(input CustomerInput) (*model.Customer, error) {
    startDate, err := s.validate(input, 0)
    if err != nil {
        return nil, err
    }

    c := &model.Customer{
        Name:               input.Name,
        Reference:          input.Reference,
        CustomerCategoryID: input.CustomerCategoryID,
        StartDate:          startDate,
        Description:        input.Description,
    }

    if err := s.CustomerRepo.Create(c); err != nil {
        return nil, err
    }

    if err := s.attachCategory(c); err != nil {
        return nil, err
    }
    c.Contacts = []model.Contact{}
    c.ContactsCount = 0

    s.publish("created", c.ID)
    return c, nil
}

// UpdateCustomer is a full replace: every field comes from the input.
// The reference uniqueness check excludes the row being updated.
func (s *CustomerService) UpdateCustomer(id int, input CustomerInput) (*model.Customer, error) {
    existing, err := s.CustomerRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if existing == nil {
        return nil, appErrors.NewCustomerNotFound(id)
    }

    startDate, err := s.validate(input, id)
    if err != nil {
        return nil, err
    }

    existing.Name = input.Name
    existing.Reference = input.Reference
    existing.CustomerCategoryID = input.CustomerCategoryID
    existing.StartDate = startDate
    existing.Description = input.Description

    if err := s.CustomerRepo.Update(existing); err != nil {
        return nil, err
    }

    // Reload so the response carries fresh relations.
    updated, err := s.CustomerRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if updated == nil {
        return nil, appErrors.NewCustomerNotFound(id)
    }

    s.publish("updated", id)
    return updated, nil
}

// DeleteCustomer removes the customer and all its contacts. Deleting an
// absent id reports not found, including on a second delete.
func (s *CustomerService) DeleteCustomer(id int) error {
    if err := s.CustomerRepo.Delete(id); err != nil {
        return err
    }
    s.publish("deleted", id)
    return nil
}

// validate applies the create/replace rules and parses start_date.
// excludeID is 0 on create.
func (s *CustomerService) validate(input CustomerInput, excludeID int) (*time.Time, error) {
    v := appErrors.NewValidationError()

    // Limits count characters, not bytes; multibyte names fit the
    // same 255 the column allows.
    if input.Name == "" {
        v.Add("name", "The name field is required.")
    } else if utf8.RuneCountInString(input.Name) > 255 {
        v.Add("name", "The name must not be greater than 255 characters.")
    }

    if input.Reference == "" {
        v.Add("reference", "The reference field is required.")
    } else if utf8.RuneCountInString(input.Reference) > 255 {
        v.Add("reference", "The reference must not be greater than 255 characters.")
    } else {
        taken, err := s.CustomerRepo.GetByReference(input.Reference, excludeID)
        if err != nil {
            return nil, err
        }
        if taken != nil {
            v.Add("reference", "The reference has already been taken.")
        }
    }

    if input.CustomerCategoryID != nil {
        category, err := s.CategoryRepo.GetByID(*input.CustomerCategoryID)
        if err != nil {
            return nil, err
        }
        if category == nil {
            v.Add("customer_category_id", "The selected customer_category_id is invalid.")
        }
    }

    var startDate *time.Time
    if input.StartDate != nil && *input.StartDate != "" {
        t, err := time.Parse(startDateLayout, *input.StartDate)
        if err != nil {
            v.Add("start_date", "The start_date is not a valid date.")
        } else {
            startDate = &t
        }
    }

    if v.HasErrors() {
        return nil, v
    }
    return startDate, nil
}

func (s *CustomerService) attachCategory(c *model.Customer) error {
    if c.CustomerCategoryID == nil {
        c.Category = nil
        return nil
    }
    category, err := s.CategoryRepo.GetByID(*c.CustomerCategoryID)
    if err != nil {
        return err
    }
    c.Category = category
    return nil
}

func (s *CustomerService) publish(action string, id int) {
    if s.Queue == nil {
        return
    }
    ev := model.AuditEvent{
        Action:     action,
        Entity:     "customer",
        EntityID:   id,
        OccurredAt: time.Now(),
    }
    if err := s.Queue.Publish(queue.EventsTopic, ev); err != nil {
        log.Println("⚠️ failed to publish customer event:", err)
    }
}
