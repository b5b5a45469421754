package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateCustomer создает тестового клиента и возвращает его UID
func (f *TestDataFactory) CreateCustomer(t *testing.T, c models.Customer) string {
	if c.UID == "" {
		c.UID = uuid.New().String()
	}
	if c.Role == "" {
		c.Role = "member"
	}
	_, err := f.storage.DB.Exec(`INSERT INTO customers
		(uid, member_id, name, phone, email, photo, plan, age, validity, password_hash, is_first_login, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.UID, c.MemberID, c.Name, c.Phone, c.Email, c.Photo, c.Plan, c.Age,
		c.Validity, c.PasswordHash, c.IsFirstLogin, c.Role)
	require.NoError(t, err)
	return c.UID
}

// CreateAttendance создает запись о посещении
func (f *TestDataFactory) CreateAttendance(t *testing.T, customerUID string, checkIn time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO attendance (customer_uid, date, check_in)
		VALUES ($1, $2, $3) RETURNING id`,
		customerUID, checkIn.Format("2006-01-02"), checkIn).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePayment создает запись об оплате
func (f *TestDataFactory) CreatePayment(t *testing.T, customerUID string, amount int, paymentDate time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO payments
		(customer_uid, amount, method, plan_name, months_paid, payment_date, receipt_number)
		VALUES ($1, $2, 'cash', 'Gold', 1, $3, $4) RETURNING id`,
		customerUID, amount, paymentDate, "RCP-"+uuid.New().String()[:8]).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestCustomer возвращает стандартные тестовые данные клиента
func GetTestCustomer() models.Customer {
	return models.Customer{
		UID:          uuid.New().String(),
		MemberID:     "U001",
		Name:         "Test Member",
		Phone:        "+911234567890",
		Email:        "test@example.com",
		Plan:         "Gold",
		Age:          30,
		Validity:     time.Now().AddDate(0, 1, 0),
		PasswordHash: "hashedpassword",
		IsFirstLogin: true,
		Role:         "member",
	}
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE customers (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            member_id TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            photo TEXT NOT NULL DEFAULT '',
            plan TEXT NOT NULL DEFAULT '',
            age INT NOT NULL DEFAULT 0,
            validity DATE NOT NULL,
            password_hash TEXT,
            is_first_login BOOLEAN NOT NULL DEFAULT TRUE,
            last_login TIMESTAMPTZ,
            role TEXT NOT NULL DEFAULT 'member',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE attendance (
            id SERIAL PRIMARY KEY,
            customer_uid UUID NOT NULL REFERENCES customers(uid),
            date TEXT NOT NULL,
            check_in TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE payments (
            id SERIAL PRIMARY KEY,
            customer_uid UUID NOT NULL REFERENCES customers(uid),
            amount INT NOT NULL,
            method TEXT NOT NULL,
            plan_name TEXT NOT NULL,
            months_paid INT NOT NULL,
            payment_date TIMESTAMPTZ NOT NULL,
            receipt_number TEXT NOT NULL
        );

        CREATE TABLE announcements (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            message TEXT NOT NULL,
            type TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            expires_at DATE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return storage, cleanup
}
