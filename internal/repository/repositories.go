// Package repository handles all interactions with the database.
//
// Repositories speak GORM and return storage errors unchanged; mapping them
// to HTTP responses is the job of sqlerr at the service boundary.
package repository

import (
	"github.com/deppfellow/go-users/internal/server"
)

type Repositories struct {
	User *UserRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		User: NewUserRepository(s.DB.Gorm),
	}
}
