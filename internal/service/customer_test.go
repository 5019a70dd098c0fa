package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elien2016/customers/internal/errs"
	"github.com/elien2016/customers/internal/model/customer"
)

type fakeStore struct {
	nextID    int64
	rows      map[int64]customer.Customer
	createErr error
	deleted   []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, rows: map[int64]customer.Customer{}}
}

func (f *fakeStore) Create(_ context.Context, c *customer.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = f.nextID
	f.nextID++
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeStore) Find(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.rows, id)
	return nil
}

type welcome struct {
	to, firstName string
}

type fakeNotifier struct {
	err  error
	sent []welcome
}

func (f *fakeNotifier) EnqueueWelcomeEmail(_ context.Context, to, firstName string) error {
	f.sent = append(f.sent, welcome{to, firstName})
	return f.err
}

func strPtr(s string) *string { return &s }

func createRequest(email string) *customer.CreateCustomerRequest {
	return &customer.CreateCustomerRequest{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Email:     strPtr(email),
		Address:   strPtr("London"),
	}
}

func TestCreateCustomer(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewCustomerService(store, notifier)

	c, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, customer.Customer{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Address: "London"}, store.rows[1])
	assert.Equal(t, []welcome{{"ada@x.com", "Ada"}}, notifier.sent)
}

func TestCreateCustomerEnqueueFailureIsIgnored(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("redis down")}
	svc := NewCustomerService(newFakeStore(), notifier)

	c, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Len(t, notifier.sent, 1)
}

func TestCreateCustomerWithoutEmailSkipsWelcome(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewCustomerService(newFakeStore(), notifier)

	_, err := svc.CreateCustomer(context.Background(), createRequest(""))
	require.NoError(t, err)
	assert.Empty(t, notifier.sent)
}

func TestCreateCustomerWithoutNotifier(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), nil)

	c, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
}

func TestCreateCustomerStoreError(t *testing.T) {
	store := newFakeStore()
	store.createErr = &pgconn.PgError{Code: "23505", TableName: "customers", ConstraintName: "customers_email_key"}
	notifier := &fakeNotifier{}
	svc := NewCustomerService(store, notifier)

	_, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", httpErr.Code)
	assert.Empty(t, notifier.sent)
}

func TestGetCustomer(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil)

	created, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))
	require.NoError(t, err)

	got, err := svc.GetCustomer(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), nil)

	_, err := svc.GetCustomer(context.Background(), 42)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Customer Id: '42' was not found.", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestDeleteCustomer(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil)

	created, err := svc.CreateCustomer(context.Background(), createRequest("ada@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(context.Background(), created.ID))
	require.NoError(t, svc.DeleteCustomer(context.Background(), created.ID))
	assert.Equal(t, []int64{created.ID, created.ID}, store.deleted)

	_, err = svc.GetCustomer(context.Background(), created.ID)
	assert.Error(t, err)
}
