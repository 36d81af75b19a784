package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := openGORM(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearAllData(db)
		}

		seedDepartments(db)
		seedUsers(db)
		seedEmployees(db)

		fmt.Println("Database seeded successfully")
	},
}

func clearAllData(db *gorm.DB) {
	// child tables first so FK constraints hold
	for _, table := range []string{"customer_reviews", "employees", "departments", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedDepartments(db *gorm.DB) {
	departments := []struct {
		Name string
		Desc string
	}{
		{"Engineering", "Product development and infrastructure"},
		{"Sales", "New business and account management"},
		{"Marketing", "Brand, campaigns and growth"},
		{"Customer Support", "Customer success and support"},
		{"Human Resources", "People operations"},
	}

	for _, d := range departments {
		var exists int
		row := db.Raw("SELECT 1 FROM departments WHERE name = ?", d.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO departments (name, description, created_at) VALUES (?, ?, now())", d.Name, d.Desc).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", d.Name, err)
		}
		fmt.Printf("Seeded department: %s\n", d.Name)
	}
}

func seedUsers(db *gorm.DB) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := []struct {
		Name     string
		Username string
		Email    string
		Role     string
	}{
		{"Admin User", "admin", "admin@mail.com", "admin"},
		{"Customer User", "customer", "customer@mail.com", "customer"},
	}

	for _, u := range users {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("%s user already exists\n", u.Username)
			continue
		}

		if err := db.Exec("INSERT INTO users (name, username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, now())",
			u.Name, u.Username, u.Email, string(hash), u.Role).Error; err != nil {
			log.Fatalf("failed to insert %s user: %v", u.Username, err)
		}
		fmt.Printf("Seeded %s user: %s\n", u.Role, u.Username)
	}
}

func seedEmployees(db *gorm.DB) {
	employees := []struct {
		Name       string
		Department string
		Position   string
		Email      string
		Phone      string
		JoinDate   string
		Avatar     string
	}{
		{"Sarah Johnson", "Engineering", "Senior Engineer", "sarah.johnson@mail.com", "+1-555-0101", "2022-03-14", "SJ"},
		{"Michael Chen", "Sales", "Account Executive", "michael.chen@mail.com", "+1-555-0102", "2021-07-01", "MC"},
		{"Emily Rodriguez", "Marketing", "Marketing Manager", "emily.rodriguez@mail.com", "+1-555-0103", "2023-01-09", "ER"},
		{"David Kim", "Customer Support", "Support Specialist", "david.kim@mail.com", "+1-555-0104", "2022-11-21", "DK"},
		{"Priya Patel", "Human Resources", "HR Generalist", "priya.patel@mail.com", "+1-555-0105", "2020-05-18", "PP"},
	}

	for _, e := range employees {
		var exists int
		row := db.Raw("SELECT 1 FROM employees WHERE email = ?", e.Email).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO employees (name, department, position, email, phone, join_date, avatar, customer_rating, review_count, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, now())",
			e.Name, e.Department, e.Position, e.Email, e.Phone, e.JoinDate, e.Avatar).Error; err != nil {
			log.Fatalf("failed to insert employee %s: %v", e.Name, err)
		}
		fmt.Printf("Seeded employee: %s\n", e.Name)
	}
}
