package dummydb

import (
	"context"
	"sort"

	"github.com/Alexseyf/elo-api/core/user"
)

var userPKCount int

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.user.table))
	for _, u := range repo.db.user.table {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email && !isExcluded(usr, excludedUsers) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	userPKCount++
	usr.ID = userPKCount
	repo.db.user.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	if usr, ok := repo.db.user.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	if _, ok := repo.db.user.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.db.user.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) CreateAuditLog(ctx context.Context, entry user.AuditLog) (user.AuditLog, error) {
	repo.db.auditLog.Lock()
	defer repo.db.auditLog.Unlock()

	entry.ID = len(repo.db.auditLog.table) + 1
	repo.db.auditLog.table[entry.ID] = &entry
	return entry, nil
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, excl := range excludedUsers {
		if excl.ID == usr.ID {
			return true
		}
	}
	return false
}
