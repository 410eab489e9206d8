package service

import (
	"github.com/deppfellow/go-users/internal/repository"
	"github.com/deppfellow/go-users/internal/server"
)

type Services struct {
	User *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier WelcomeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		User: NewUserService(repos.User, notifier),
	}, nil
}
