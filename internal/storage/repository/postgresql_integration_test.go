package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

func TestStorage_GetCustomerByMemberID(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	customer := GetTestCustomer()
	factory.CreateCustomer(t, customer)

	got, err := storage.GetCustomerByMemberID(context.Background(), "U001")
	require.NoError(t, err)
	assert.Equal(t, customer.UID, got.UID)
	assert.Equal(t, "Test Member", got.Name)
	assert.True(t, got.IsFirstLogin)
	assert.Nil(t, got.LastLogin)

	_, err = storage.GetCustomerByMemberID(context.Background(), "U999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCustomerNotFound))
}

func TestStorage_UpdateCustomerProfile_PartialUpdate(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	customer := GetTestCustomer()
	uid := factory.CreateCustomer(t, customer)

	// Передан только телефон: остальные поля не меняются.
	got, err := storage.UpdateCustomerProfile(context.Background(), uid, models.ProfileUpdate{
		Phone: "+919999999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "+919999999999", got.Phone)
	assert.Equal(t, customer.Name, got.Name)
	assert.Equal(t, customer.Email, got.Email)
	assert.Equal(t, customer.Photo, got.Photo)
}

func TestStorage_UpdateCustomerPassword_ClearsFirstLoginFlag(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateCustomer(t, GetTestCustomer())

	err := storage.UpdateCustomerPassword(context.Background(), uid, "newhash")
	require.NoError(t, err)

	got, err := storage.GetCustomer(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
	assert.False(t, got.IsFirstLogin)

	// Повторная смена пароля не возвращает флаг обратно.
	err = storage.UpdateCustomerPassword(context.Background(), uid, "anotherhash")
	require.NoError(t, err)

	got, err = storage.GetCustomer(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, got.IsFirstLogin)
}

func TestStorage_UpdateCustomerPassword_UnknownCustomer(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.UpdateCustomerPassword(context.Background(),
		"550e8400-e29b-41d4-a716-446655440009", "hash")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCustomerNotFound))
}

func TestStorage_ListAttendance_Pagination(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateCustomer(t, GetTestCustomer())

	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := range 5 {
		factory.CreateAttendance(t, uid, base.AddDate(0, 0, i))
	}

	got, err := storage.ListAttendance(context.Background(), uid, 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Отсортировано от новых к старым.
	assert.Equal(t, "2025-02-05", got[0].Date)
	assert.Equal(t, "2025-02-04", got[1].Date)

	total, err := storage.CountAttendance(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestStorage_ListPayments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateCustomer(t, GetTestCustomer())

	base := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	factory.CreatePayment(t, uid, 1500, base)
	factory.CreatePayment(t, uid, 2000, base.AddDate(0, 1, 0))

	got, err := storage.ListPayments(context.Background(), uid, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2000, got[0].Amount)
	assert.Equal(t, 1500, got[1].Amount)

	total, err := storage.CountPayments(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestStorage_CountCustomersByStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	makeCustomer := func(memberID string, validity time.Time) models.Customer {
		c := GetTestCustomer()
		c.UID = ""
		c.MemberID = memberID
		c.Email = memberID + "@example.com"
		c.Validity = validity
		return c
	}

	now := time.Now()
	factory.CreateCustomer(t, makeCustomer("U001", now.AddDate(0, 2, 0)))  // active
	factory.CreateCustomer(t, makeCustomer("U002", now.AddDate(0, 0, 3))) // expiring
	factory.CreateCustomer(t, makeCustomer("U003", now))                  // expiring (today)
	factory.CreateCustomer(t, makeCustomer("U004", now.AddDate(0, 0, -2))) // expired

	counts, err := storage.CountCustomersByStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 1, counts.Active)
	assert.Equal(t, 2, counts.Expiring)
	assert.Equal(t, 1, counts.Expired)
}

func TestStorage_Announcements(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	past := time.Now().AddDate(0, 0, -1)
	id1, err := storage.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "New yoga class", Message: "Starts Monday", Type: "event", Active: true,
	})
	require.NoError(t, err)

	_, err = storage.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "Old offer", Message: "Expired", Type: "offer", Active: true, ExpiresAt: &past,
	})
	require.NoError(t, err)

	_, err = storage.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "Draft", Message: "Hidden", Type: "info", Active: false,
	})
	require.NoError(t, err)

	active, err := storage.ListActiveAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "New yoga class", active[0].Title)

	all, err := storage.ListAllAnnouncements(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	removed, err := storage.RemoveAnnouncement(context.Background(), id1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestStorage_FindMembershipsExpiringSoon(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	makeCustomer := func(memberID string, validity time.Time) models.Customer {
		c := GetTestCustomer()
		c.UID = ""
		c.MemberID = memberID
		c.Email = memberID + "@example.com"
		c.Validity = validity
		return c
	}

	now := time.Now()
	factory.CreateCustomer(t, makeCustomer("U001", now.AddDate(0, 0, 3)))
	factory.CreateCustomer(t, makeCustomer("U002", now.AddDate(0, 2, 0)))
	factory.CreateCustomer(t, makeCustomer("U003", now.AddDate(0, 0, -1)))

	got, err := storage.FindMembershipsExpiringSoon(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "U001", got[0].MemberID)
}
