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

type ContactInput struct {
    FirstName string  `json:"first_name"`
    LastName  *string `json:"last_name"`
}

type ContactService struct {
    ContactRepo  repository.ContactRepositoryInterface
    CustomerRepo repository.CustomerRepositoryInterface
    Queue        queue.Queue
}

// ListByCustomer returns the contacts of an existing customer.
func (s *ContactService) ListByCustomer(customerID int) ([]model.Contact, error) {
    customer, err := s.CustomerRepo.GetByID(customerID)
    if err != nil {
        return nil, err
    }
    if customer == nil {
        return nil, appErrors.NewCustomerNotFound(customerID)
    }
    return s.ContactRepo.ListByCustomer(customerID)
}

// CreateContact creates a contact under an existing customer. A missing
// customer reports not found before any field validation runs.
func (s *ContactService) CreateContact(customerID int, input ContactInput) (*model.Contact, error) {
    customer, err := s.CustomerRepo.GetByID(customerID)
    if err != nil {
        return nil, err
    }
    if customer == nil {
        return nil, appErrors.NewCustomerNotFound(customerID)
    }

    if err := validateContact(input); err != nil {
        return nil, err
    }

    ct := &model.Contact{
        CustomerID: customerID,
        FirstName:  input.FirstName,
        LastName:   input.LastName,
    }
    if err := s.ContactRepo.Create(ct); err != nil {
        return nil, err
    }

    s.publish("created", ct.ID)
    return ct, nil
}

// UpdateContact is addressed by bare contact id, independent of the
// owning customer. The customer_id never changes.
func (s *ContactService) UpdateContact(id int, input ContactInput) (*model.Contact, error) {
    existing, err := s.ContactRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if existing == nil {
        return nil, appErrors.NewContactNotFound(id)
    }

    if err := validateContact(input); err != nil {
        return nil, err
    }

    existing.FirstName = input.FirstName
    existing.LastName = input.LastName
    if err := s.ContactRepo.Update(existing); err != nil {
        return nil, err
    }

    updated, err := s.ContactRepo.GetByID(id)
    if err != nil {
        return nil, err
    }
    if updated == nil {
        // Deleted between the write and the reload.
        return nil, appErrors.NewContactNotFound(id)
    }

    s.publish("updated", id)
    return updated, nil
}

func (s *ContactService) DeleteContact(id int) error {
    existing, err := s.ContactRepo.GetByID(id)
    if err != nil {
        return err
    }
    if existing == nil {
        return appErrors.NewContactNotFound(id)
    }

    if err := s.ContactRepo.Delete(id); err != nil {
        return err
    }

    s.publish("deleted", id)
    return nil
}

func validateContact(input ContactInput) error {
    v := appErrors.NewValidationError()

    if input.FirstName == "" {
        v.Add("first_name", "The first_name field is required.")
    } else if utf8.RuneCountInString(input.FirstName) > 255 {
        v.Add("first_name", "The first_name must not be greater than 255 characters.")
    }

    if input.LastName != nil && utf8.RuneCountInString(*input.LastName) > 255 {
        v.Add("last_name", "The last_name must not be greater than 255 characters.")
    }

    if v.HasErrors() {
        return v
    }
    return nil
}

func (s *ContactService) publish(action string, id int) {
    if s.Queue == nil {
        return
    }
    ev := model.AuditEvent{
        Action:     action,
        Entity:     "contact",
        EntityID:   id,
        OccurredAt: time.Now(),
    }
    if err := s.Queue.Publish(queue.EventsTopic, ev); err != nil {
        log.Println("⚠️ failed to publish contact event:", err)
    }
}
