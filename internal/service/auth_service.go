package service

import (
	"errors"

	"quiz_app_backend/internal/config"
	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	UserName    string `json:"userName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
}

// Register 注册新考生，默认挂 User 角色
func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.UserRepo.FindByUserName(req.UserName); err == nil {
		return nil, util.ErrUserNameRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserName:    req.UserName,
		Email:       req.Email,
		Password:    string(hashedPassword),
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}

	if role, err := s.RoleRepo.FindByName(model.RoleUser); err == nil {
		user.Roles = []model.Role{*role}
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名或邮箱均可登录
func (s *AuthService) Login(account, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUserName(account)
	if err != nil {
		user, err = s.UserRepo.FindByEmail(account)
	}
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
