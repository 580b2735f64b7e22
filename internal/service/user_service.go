package service

import (
	"context"
	"strings"

	"github.com/laptopstore-next/internal/cache"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// UserService 后台用户管理服务
type UserService struct {
	userRepo    repository.UserRepository
	authService *AuthService
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{userRepo: userRepo, authService: authService}
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AdminCreateUserInput 后台创建用户输入
type AdminCreateUserInput struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	Role     string
	Locale   string
}

// Create 后台创建用户
// 账号创建后处于 pending 状态，通过激活邮件由本人设置密码
func (s *UserService) Create(ctx context.Context, input AdminCreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	phone := strings.TrimSpace(input.Phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, ErrInvalidParams
	}
	if existing, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailExists
	}
	if phone != "" {
		if existing, err := s.userRepo.GetByPhone(phone); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, ErrPhoneExists
		}
	}

	user := &models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    email,
		Phone:    phone,
		Address:  strings.TrimSpace(input.Address),
		Role:     normalizeRole(input.Role),
		Status:   constants.UserStatusPending,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := s.authService.IssueSetupToken(ctx, user, input.Locale); err != nil {
		logger.Warnw("user_create_setup_email_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_created_by_admin", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// UpdateRole 调整用户角色
func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Role = normalizeRole(role)
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("user_update_role_cache_del_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_role_updated", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// SetStatus 启用/停用用户
// 停用会递增 token 版本，令已签发的 JWT 立即失效
func (s *UserService) SetStatus(ctx context.Context, id uint, status string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	normalized := normalizeUserStatus(status)
	if normalized == "" {
		return nil, ErrInvalidParams
	}
	user.Status = normalized
	if normalized == constants.UserStatusInactive {
		user.TokenVersion++
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("user_set_status_cache_del_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_status_updated", "user_id", user.ID, "status", user.Status)
	return user, nil
}

// BatchSetStatus 批量启用/停用
func (s *UserService) BatchSetStatus(ctx context.Context, ids []uint, status string) error {
	normalized := normalizeUserStatus(status)
	if normalized == "" || len(ids) == 0 {
		return ErrInvalidParams
	}
	if err := s.userRepo.BatchUpdateStatus(ids, normalized); err != nil {
		return err
	}
	for _, id := range ids {
		if err := cache.DelUserAuthState(ctx, id); err != nil {
			logger.Warnw("user_batch_status_cache_del_failed", "user_id", id, "error", err)
		}
	}
	logger.Infow("user_batch_status_updated", "count", len(ids), "status", normalized)
	return nil
}

// ResendSetupEmail 重发激活邮件（仅限 pending 账号）
func (s *UserService) ResendSetupEmail(ctx context.Context, id uint, locale string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Status != constants.UserStatusPending {
		return ErrInvalidParams
	}
	return s.authService.IssueSetupToken(ctx, user, locale)
}

// ResetPassword 后台触发密码重置
// 提升 token_version 强制下线，并发送重设密码邮件由本人设置新密码
func (s *UserService) ResetPassword(ctx context.Context, id uint, locale string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	// 停用账号不允许通过重置邮件重新激活
	if user.Status == constants.UserStatusInactive {
		return ErrInvalidParams
	}
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("user_reset_password_cache_del_failed", "user_id", user.ID, "error", err)
	}
	if err := s.authService.IssueSetupToken(ctx, user, locale); err != nil {
		return err
	}
	logger.Infow("user_password_reset_by_admin", "user_id", user.ID)
	return nil
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case constants.RoleAdmin:
		return constants.RoleAdmin
	case constants.RoleStaff:
		return constants.RoleStaff
	default:
		return constants.RoleCustomer
	}
}

func normalizeUserStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.UserStatusActive:
		return constants.UserStatusActive
	case constants.UserStatusInactive:
		return constants.UserStatusInactive
	case constants.UserStatusPending:
		return constants.UserStatusPending
	default:
		return ""
	}
}
