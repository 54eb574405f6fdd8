package service

import "github.com/unclebandit/crm-backend/internal/model"

// Wire shapes. The frontend expects category_id duplicated under
// customer_category_id and start_date as MM/DD/YYYY or null.

type ContactResponse struct {
    ID        int     `json:"id"`
    FirstName string  `json:"first_name"`
    LastName  *string `json:"last_name"`
}

type CustomerResponse struct {
    ID                 int     `json:"id"`
    Name               string  `json:"name"`
    Reference          string  `json:"reference"`
    Category           *string `json:"category"`
    CategoryID         *int    `json:"category_id"`
    CustomerCategoryID *int    `json:"customer_category_id"`
    StartDate          *string `json:"start_date"`
    Description        *string `json:"description"`
    ContactsCount      int     `json:"contacts_count"`
}

type CustomerDetailResponse struct {
    CustomerResponse
    Contacts []ContactResponse `json:"contacts"`
}

const startDateWireLayout = "01/02/2006"

// FormatCustomerForResponse shapes a fully loaded customer into the
// summary wire form.
func FormatCustomerForResponse(c *model.Customer) CustomerResponse {
    resp := CustomerResponse{
        ID:                 c.ID,
        Name:               c.Name,
        Reference:          c.Reference,
        CategoryID:         c.CustomerCategoryID,
        CustomerCategoryID: c.CustomerCategoryID,
        Description:        c.Description,
        ContactsCount:      c.ContactsCount,
    }
    if c.Category != nil {
        name := c.Category.Name
        resp.Category = &name
    }
    if c.StartDate != nil {
        formatted := c.StartDate.Format(startDateWireLayout)
        resp.StartDate = &formatted
    }
    return resp
}

// FormatCustomerDetail adds the contact list to the summary form.
func FormatCustomerDetail(c *model.Customer) CustomerDetailResponse {
    return CustomerDetailResponse{
        CustomerResponse: FormatCustomerForResponse(c),
        Contacts:         FormatContactsForResponse(c.Contacts),
    }
}

func FormatCustomersForResponse(customers []*model.Customer) []CustomerResponse {
    out := make([]CustomerResponse, len(customers))
    for i, c := range customers {
        out[i] = FormatCustomerForResponse(c)
    }
    return out
}

func FormatContactForResponse(ct *model.Contact) ContactResponse {
    return ContactResponse{
        ID:        ct.ID,
        FirstName: ct.FirstName,
        LastName:  ct.LastName,
    }
}

func FormatContactsForResponse(contacts []model.Contact) []ContactResponse {
    out := make([]ContactResponse, len(contacts))
    for i := range contacts {
        out[i] = FormatContactForResponse(&contacts[i])
    }
    return out
}
