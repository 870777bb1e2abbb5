package repository

import (
	"errors"

	userDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	return r.first("username = ?", username)
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	return r.first("id = ?", id)
}

func (r *UserRepository) first(query string, arg interface{}) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) List() ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}
