package service

import (
	"errors"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository
}

func NewUserService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository) *UserService {
	return &UserService{UserRepo: userRepo, RoleRepo: roleRepo}
}

type UserReq struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	PhoneNumber *string   `json:"phoneNumber"`
	Avatar      *string   `json:"avatar"`
	IsActive    *bool     `json:"isActive"`
	RoleIDs     *[]string `json:"roleIds"`
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Search(keyword string, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.Search(keyword, page, limit)
}

func (s *UserService) UpdateUser(id string, req UserReq) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	if req.RoleIDs != nil {
		roles, err := s.RoleRepo.FindByIDs(*req.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.UserRepo.ReplaceRoles(user, roles); err != nil {
			return nil, err
		}
		user.Roles = roles
	}

	return user, nil
}

func (s *UserService) DeleteUser(id string) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}

// ChangePassword 校验旧密码后更新
func (s *UserService) ChangePassword(id, oldPassword, newPassword string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) UpdateAvatar(id, avatarURL string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.Avatar = avatarURL
	return s.UserRepo.Update(user)
}
