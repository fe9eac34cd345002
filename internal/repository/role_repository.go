package repository

import (
	"quiz_app_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) Create(role *model.Role) error {
	return r.DB.Create(role).Error
}

func (r *RoleRepository) FindByID(id string) (*model.Role, error) {
	var role model.Role
	if err := r.DB.First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) FindByName(name string) (*model.Role, error) {
	var role model.Role
	if err := r.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) FindByIDs(ids []string) ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) Update(role *model.Role) error {
	return r.DB.Save(role).Error
}

func (r *RoleRepository) Delete(id string) error {
	return r.DB.Delete(&model.Role{}, "id = ?", id).Error
}

func (r *RoleRepository) Search(keyword string, page, limit int) ([]model.Role, int64, error) {
	var roles []model.Role
	var total int64

	query := r.DB.Model(&model.Role{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&roles).Error
	return roles, total, err
}
