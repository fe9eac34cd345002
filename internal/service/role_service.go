package service

import (
	"errors"

	"quiz_app_backend/internal/model"
	"quiz_app_backend/internal/repository"
	"quiz_app_backend/internal/util"

	"gorm.io/gorm"
)

type RoleService struct {
	Repo *repository.RoleRepository
}

func NewRoleService(repo *repository.RoleRepository) *RoleService {
	return &RoleService{Repo: repo}
}

type RoleReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (s *RoleService) CreateRole(req RoleReq) (*model.Role, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errors.New("name is required")
	}

	role := &model.Role{Name: *req.Name, IsActive: true}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) GetRole(id string) (*model.Role, error) {
	role, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Search(keyword string, page, limit int) ([]model.Role, int64, error) {
	return s.Repo.Search(keyword, page, limit)
}

func (s *RoleService) UpdateRole(id string, req RoleReq) (*model.Role, error) {
	role, err := s.GetRole(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) DeleteRole(id string) error {
	if _, err := s.GetRole(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
