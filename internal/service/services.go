package service

import (
	"github.com/elien2016/customers/internal/lib/job"
	"github.com/elien2016/customers/internal/repository"
	"github.com/elien2016/customers/internal/server"
)

type Services struct {
	Customers *CustomerService
	Job       *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// Assigning a nil *job.JobService to the interface would make it non-nil.
	var notifier WelcomeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Customers: NewCustomerService(repos.Customers, notifier),
		Job:       s.Job,
	}, nil
}
