package repo

import (
	"BioAttend/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository — минимальный контракт доступа к учётным записям сотрудников.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetUserByLogin возвращает gorm.ErrRecordNotFound, если логин не найден.
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
