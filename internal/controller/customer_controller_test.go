package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/crm-backend/internal/controller"
	appErrors "github.com/unclebandit/crm-backend/internal/errors"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
	"github.com/unclebandit/crm-backend/internal/service"
)

// In-memory store shared by the mock repositories so customer counts,
// contact lists and cascades behave like the real schema.
type memStore struct {
	customers     map[int]*model.Customer
	contacts      map[int]*model.Contact
	categories    map[int]model.CustomerCategory
	nextCustomer  int
	nextContact   int
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int]*model.Customer{},
		contacts:  map[int]*model.Contact{},
		categories: map[int]model.CustomerCategory{
			1: {ID: 1, Name: "Gold"},
			2: {ID: 2, Name: "Silver"},
		},
		nextCustomer: 1,
		nextContact:  1,
	}
}

func (s *memStore) contactsFor(customerID int) []model.Contact {
	ids := []int{}
	for id, ct := range s.contacts {
		if ct.CustomerID == customerID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := []model.Contact{}
	for _, id := range ids {
		out = append(out, *s.contacts[id])
	}
	return out
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) List(filters repository.CustomerFilters) ([]*model.Customer, error) {
	ids := []int{}
	for id := range r.store.customers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := []*model.Customer{}
	for _, id := range ids {
		c := r.store.customers[id]
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Reference), needle) {
				continue
			}
		}
		if filters.CategoryID != 0 {
			if c.CustomerCategoryID == nil || *c.CustomerCategoryID != filters.CategoryID {
				continue
			}
		}
		copied := *c
		r.attachCategory(&copied)
		copied.ContactsCount = len(r.store.contactsFor(id))
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memCustomerRepo) GetByID(id int) (*model.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	r.attachCategory(&copied)
	copied.Contacts = r.store.contactsFor(id)
	copied.ContactsCount = len(copied.Contacts)
	return &copied, nil
}

func (r *memCustomerRepo) attachCategory(c *model.Customer) {
	if c.CustomerCategoryID == nil {
		return
	}
	if cat, ok := r.store.categories[*c.CustomerCategoryID]; ok {
		c.Category = &cat
	}
}

func (r *memCustomerRepo) GetByReference(reference string, excludeID int) (*model.Customer, error) {
	for _, c := range r.store.customers {
		if c.Reference == reference && c.ID != excludeID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) Create(c *model.Customer) error {
	c.ID = r.store.nextCustomer
	r.store.nextCustomer++
	copied := *c
	r.store.customers[c.ID] = &copied
	return nil
}

func (r *memCustomerRepo) Update(c *model.Customer) error {
	if _, ok := r.store.customers[c.ID]; !ok {
		return appErrors.NewCustomerNotFound(c.ID)
	}
	copied := *c
	copied.Category = nil
	copied.Contacts = nil
	r.store.customers[c.ID] = &copied
	return nil
}

func (r *memCustomerRepo) Delete(id int) error {
	if _, ok := r.store.customers[id]; !ok {
		return appErrors.NewCustomerNotFound(id)
	}
	delete(r.store.customers, id)
	for ctID, ct := range r.store.contacts {
		if ct.CustomerID == id {
			delete(r.store.contacts, ctID)
		}
	}
	return nil
}

type memContactRepo struct{ store *memStore }

func (r *memContactRepo) ListByCustomer(customerID int) ([]model.Contact, error) {
	return r.store.contactsFor(customerID), nil
}

func (r *memContactRepo) GetByID(id int) (*model.Contact, error) {
	ct, ok := r.store.contacts[id]
	if !ok {
		return nil, nil
	}
	copied := *ct
	return &copied, nil
}

func (r *memContactRepo) Create(ct *model.Contact) error {
	ct.ID = r.store.nextContact
	r.store.nextContact++
	copied := *ct
	r.store.contacts[ct.ID] = &copied
	return nil
}

func (r *memContactRepo) Update(ct *model.Contact) error {
	copied := *ct
	r.store.contacts[ct.ID] = &copied
	return nil
}

func (r *memContactRepo) Delete(id int) error {
	delete(r.store.contacts, id)
	return nil
}

type memCategoryRepo struct{ store *memStore }

func (r *memCategoryRepo) ListAll() ([]model.CustomerCategory, error) {
	out := []model.CustomerCategory{}
	for _, cat := range r.store.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) GetByID(id int) (*model.CustomerCategory, error) {
	cat, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

var (
	_ repository.CustomerRepositoryInterface = (*memCustomerRepo)(nil)
	_ repository.ContactRepositoryInterface  = (*memContactRepo)(nil)
	_ repository.CategoryRepositoryInterface = (*memCategoryRepo)(nil)
)

// newTestRouter wires the full route table against the in-memory store.
func newTestRouter() (*chi.Mux, *memStore) {
	store := newMemStore()
	customerRepo := &memCustomerRepo{store: store}
	contactRepo := &memContactRepo{store: store}
	categoryRepo := &memCategoryRepo{store: store}

	customerService := &service.CustomerService{CustomerRepo: customerRepo, CategoryRepo: categoryRepo}
	contactService := &service.ContactService{ContactRepo: contactRepo, CustomerRepo: customerRepo}
	categoryService := &service.CategoryService{CategoryRepo: categoryRepo}

	customerController := &controller.CustomerController{CustomerService: customerService}
	contactController := &controller.ContactController{ContactService: contactService}
	categoryController := &controller.CategoryController{CategoryService: categoryService}

	r := chi.NewRouter()
	r.Get("/customer-categories", categoryController.ListCategories)
	r.Get("/customers", customerController.ListCustomers)
	r.Post("/customers", customerController.CreateCustomer)
	r.Get("/customers/{id}", customerController.GetCustomer)
	r.Put("/customers/{id}", customerController.UpdateCustomer)
	r.Delete("/customers/{id}", customerController.DeleteCustomer)
	r.Get("/customers/{id}/contacts", contactController.ListContacts)
	r.Post("/customers/{id}/contacts", contactController.CreateContact)
	r.Put("/contacts/{id}", contactController.UpdateContact)
	r.Delete("/contacts/{id}", contactController.DeleteContact)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

// --- Tests ---

func TestCreateCustomerEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/customers", map[string]any{
		"name":      "Acme",
		"reference": "ACME001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	decode(t, w, &resp)
	require.Equal(t, "Acme", resp["name"])
	require.Equal(t, "ACME001", resp["reference"])
	require.EqualValues(t, 0, resp["contacts_count"])
	require.Nil(t, resp["category"])
	require.Nil(t, resp["start_date"])
}

func TestCreateCustomerValidationPayload(t *testing.T) {
	r, _ := newTestRouter()

	doJSON(t, r, "POST", "/customers", map[string]any{"name": "Acme", "reference": "ACME001"})
	w := doJSON(t, r, "POST", "/customers", map[string]any{"name": "Other", "reference": "ACME001"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	decode(t, w, &resp)
	require.Equal(t, "The given data was invalid.", resp.Message)
	require.NotEmpty(t, resp.Errors["reference"])
}

func TestGetCustomerDetailRoundTrip(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/customers", map[string]any{
		"name":                 "Acme",
		"reference":            "ACME001",
		"customer_category_id": 1,
		"start_date":           "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, "POST", fmt.Sprintf("/customers/%d/contacts", created.ID), map[string]any{
		"first_name": "John",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/customers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Category      *string `json:"category"`
		StartDate     *string `json:"start_date"`
		ContactsCount int     `json:"contacts_count"`
		Contacts      []struct {
			FirstName string  `json:"first_name"`
			LastName  *string `json:"last_name"`
		} `json:"contacts"`
	}
	decode(t, w, &detail)
	require.NotNil(t, detail.Category)
	require.Equal(t, "Gold", *detail.Category)
	require.NotNil(t, detail.StartDate)
	require.Equal(t, "03/05/2024", *detail.StartDate)
	require.Equal(t, 1, detail.ContactsCount)
	require.Len(t, detail.Contacts, 1)
	require.Equal(t, "John", detail.Contacts[0].FirstName)
	require.Nil(t, detail.Contacts[0].LastName)
}

func TestGetCustomerNotFound(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "GET", "/customers/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	decode(t, w, &resp)
	require.Equal(t, "Customer not found", resp["message"])
}

func TestUpdateCustomerKeepsOwnReferenceEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/customers", map[string]any{"name": "Acme", "reference": "ACME001"})
	var created struct {
		ID int `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/customers/%d", created.ID), map[string]any{
		"name":      "Acme Renamed",
		"reference": "ACME001",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decode(t, w, &resp)
	require.Equal(t, "Acme Renamed", resp["name"])
}

func TestDeleteCustomerCascadesAndIsNotIdempotent(t *testing.T) {
	r, store := newTestRouter()

	w := doJSON(t, r, "POST", "/customers", map[string]any{"name": "Acme", "reference": "ACME001"})
	var created struct {
		ID int `json:"id"`
	}
	decode(t, w, &created)

	for _, name := range []string{"John", "Jane"} {
		w = doJSON(t, r, "POST", fmt.Sprintf("/customers/%d/contacts", created.ID), map[string]any{"first_name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/customers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	require.Equal(t, "Customer deleted successfully", resp["message"])
	require.Empty(t, store.contacts)

	// Second delete is a 404, not a silent success.
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/customers/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Contact listing for the deleted customer is a 404 too.
	w = doJSON(t, r, "GET", fmt.Sprintf("/customers/%d/contacts", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCustomersSearchAndCategory(t *testing.T) {
	r, _ := newTestRouter()

	seed := []map[string]any{
		{"name": "Acme Corporation", "reference": "ACME001", "customer_category_id": 1},
		{"name": "Acme Labs", "reference": "ACME002", "customer_category_id": 2},
		{"name": "Globex", "reference": "GX-ACME", "customer_category_id": 1},
		{"name": "Initech", "reference": "INIT01", "customer_category_id": 1},
	}
	for _, c := range seed {
		w := doJSON(t, r, "POST", "/customers", c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, "GET", "/customers?search=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	decode(t, w, &list)
	require.Len(t, list, 3)

	w = doJSON(t, r, "GET", "/customers?search=acme&category=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	decode(t, w, &list)
	require.Len(t, list, 2)
	for _, c := range list {
		require.EqualValues(t, 1, c["category_id"])
		require.Equal(t, "Gold", c["category"])
	}
}

func TestListCategoriesEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "GET", "/customer-categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []model.CustomerCategory
	decode(t, w, &categories)
	require.Len(t, categories, 2)
	require.Equal(t, "Gold", categories[0].Name)
	require.Equal(t, "Silver", categories[1].Name)
}
