// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/crm-backend/internal/controller"
	"github.com/unclebandit/crm-backend/internal/db"
	"github.com/unclebandit/crm-backend/internal/queue"
	"github.com/unclebandit/crm-backend/internal/repository"
	"github.com/unclebandit/crm-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	contactRepo := &repository.ContactRepository{DB: db.DB}
	categoryRepo := &repository.CategoryRepository{DB: db.DB}
	auditRepo := &repository.AuditRepository{DB: db.DB}

	// With a broker configured, events go to RabbitMQ and cmd/worker
	// drains them. Otherwise the in-memory queue records them in-process.
	var q queue.Queue
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpQueue, err := queue.DialAMQP(amqpURL)
		if err != nil {
			log.Fatalf("failed to connect to AMQP: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartAuditSubscriber(memQueue, auditRepo)
		q = memQueue
	}

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		CategoryRepo: categoryRepo,
		Queue:        q,
	}
	contactService := &service.ContactService{
		ContactRepo:  contactRepo,
		CustomerRepo: customerRepo,
		Queue:        q,
	}
	categoryService := &service.CategoryService{
		CategoryRepo: categoryRepo,
	}

	customerController := &controller.CustomerController{CustomerService: customerService}
	contactController := &controller.ContactController{ContactService: contactService}
	categoryController := &controller.CategoryController{CategoryService: categoryService}
	auditController := &controller.AuditController{AuditRepo: auditRepo}

	r := chi.NewRouter()

	// Category routes (read-only dropdown)
	r.Get("/customer-categories", categoryController.ListCategories)

	// Customer routes
	r.Get("/customers", customerController.ListCustomers)
	r.Post("/customers", customerController.CreateCustomer)
	r.Get("/customers/{id}", customerController.GetCustomer)
	r.Put("/customers/{id}", customerController.UpdateCustomer)
	r.Delete("/customers/{id}", customerController.DeleteCustomer)

	// Contact routes (nested under customers for list/create)
	r.Get("/customers/{id}/contacts", contactController.ListContacts)
	r.Post("/customers/{id}/contacts", contactController.CreateContact)
	r.Put("/contacts/{id}", contactController.UpdateContact)
	r.Delete("/contacts/{id}", contactController.DeleteContact)

	// Audit feed
	r.Get("/audit-events", auditController.ListAuditEvents)

	// Static SPA
	r.Handle("/*", http.FileServer(http.Dir("web")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
