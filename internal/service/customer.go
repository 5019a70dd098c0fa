package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/errs"
	"github.com/elien2016/customers/internal/model/customer"
	"github.com/elien2016/customers/internal/sqlerr"
)

// WelcomeEnqueueTimeout bounds how long a create waits on the job queue.
const WelcomeEnqueueTimeout = time.Second

// CustomerStore persists customers. *repository.CustomerRepository
// implements it.
type CustomerStore interface {
	Create(ctx context.Context, c *customer.Customer) error
	Find(ctx context.Context, id int64) (*customer.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// WelcomeNotifier schedules the welcome email. *job.JobService implements it.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error
}

type CustomerService struct {
	store    CustomerStore
	notifier WelcomeNotifier
}

// NewCustomerService builds the service. notifier may be nil, in which case
// no welcome emails are sent.
func NewCustomerService(store CustomerStore, notifier WelcomeNotifier) *CustomerService {
	return &CustomerService{
		store:    store,
		notifier: notifier,
	}
}

// CreateCustomer persists a new customer and schedules its welcome email.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c := req.ToCustomer()

	if err := s.store.Create(ctx, c); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	zerolog.Ctx(ctx).Info().Int64("customer_id", c.ID).Msg("customer created")

	s.sendWelcome(ctx, c)

	return c, nil
}

// sendWelcome enqueues the welcome email. Failures are logged and never
// fail the create.
func (s *CustomerService) sendWelcome(ctx context.Context, c *customer.Customer) {
	if s.notifier == nil || c.Email == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, WelcomeEnqueueTimeout)
	defer cancel()

	if err := s.notifier.EnqueueWelcomeEmail(ctx, c.Email, c.FirstName); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Int64("customer_id", c.ID).
			Msg("failed to enqueue welcome email")
	}
}

// GetCustomer returns the customer with the given id or a 404.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	c, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	if c == nil {
		code := "CUSTOMER_NOT_FOUND"
		return nil, errs.NewNotFoundError(fmt.Sprintf("Customer Id: '%d' was not found.", id), true, &code)
	}

	return c, nil
}

// DeleteCustomer removes the customer with the given id. Deleting a
// customer that does not exist succeeds.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return sqlerr.HandleError(err)
	}

	zerolog.Ctx(ctx).Info().Int64("customer_id", id).Msg("customer deleted")

	return nil
}
