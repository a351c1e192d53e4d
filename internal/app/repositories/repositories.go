package repositories

import (
	"github.com/peiyu/classmeet/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	SchoolRepository     *SchoolRepository
	ScheduleRepository   *ScheduleRepository
	FriendshipRepository *FriendshipRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		SchoolRepository:     NewSchoolRepository(database.Pool),
		ScheduleRepository:   NewScheduleRepository(database.Pool),
		FriendshipRepository: NewFriendshipRepository(database),
	}
}
