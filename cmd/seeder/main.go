//cmd/seeder/main.go
package main

import (
    "database/sql"
    "fmt"
    "log"
    "os"

    _ "github.com/lib/pq"
)

func main() {
    dsn := os.Getenv("DATABASE_URL")
    db, err := sql.Open("postgres", dsn)
    if err != nil {
        log.Fatal(err)
    }
    defer db.Close()

    sqlFiles := []string{
        "migrations/001_init.sql",
        "seed/customer_categories.sql",
        "seed/customers.sql",
        "seed/contacts.sql",
    }

    for _, file := range sqlFiles {
        content, err := os.ReadFile(file)
        if err != nil {
            log.Fatalf("failed to read %s: %v", file, err)
        }

        _, err = db.Exec(string(content))
        if err != nil {
            log.Fatalf("failed to execute %s: %v", file, err)
        }
        fmt.Printf("Applied: %s\n", file)
    }

    fmt.Println("Database seeding completed successfully!")
}
