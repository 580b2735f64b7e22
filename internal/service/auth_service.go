package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/cache"
	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/queue"
	"github.com/laptopstore-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var phonePattern = regexp.MustCompile(`^[0-9]{9,11}$`)

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// AuthService 认证服务（注册、登录、邮箱验证）
type AuthService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.EmailTokenRepository
	emailService *EmailService
	queueClient  *queue.Client
	cfg          *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.EmailTokenRepository,
	emailService *EmailService,
	queueClient *queue.Client,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		queueClient:  queueClient,
		cfg:          cfg,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Address  string
	Locale   string
}

// LoginInput 登录输入（identifier 支持邮箱或手机号）
type LoginInput struct {
	Identifier string
	Password   string
	RememberMe bool
}

// LoginResult 登录结果
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// GenerateUserJWT 签发用户 JWT
func (s *AuthService) GenerateUserJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	hours := s.cfg.JWT.ExpireHours
	if rememberMe && s.cfg.JWT.RememberMeExpireHours > 0 {
		hours = s.cfg.JWT.RememberMeExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析并校验用户 JWT
func (s *AuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 注册新顾客，成功后账号处于 pending 状态并发送验证邮件
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, ErrInvalidParams
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
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

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    email,
		Phone:    phone,
		Password: string(hashed),
		Address:  strings.TrimSpace(input.Address),
		Role:     constants.RoleCustomer,
		Status:   constants.UserStatusPending,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, user, constants.VerifyPurposeVerifyEmail, input.Locale); err != nil {
		logger.Warnw("auth_register_send_verify_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("auth_register_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login 邮箱或手机号登录
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.GetByPhone(identifier)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		// 仍执行一次哈希比较，避免通过响应时间探测账号是否存在
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(input.Password))
		return nil, ErrInvalidCredentials
	}

	ok, upgraded := verifyPassword(user.Password, input.Password)
	if !ok {
		logger.Debugw("auth_login_password_mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	switch user.Status {
	case constants.UserStatusActive:
	case constants.UserStatusPending:
		return nil, ErrEmailNotVerified
	default:
		// 停用账号与错误密码返回同一个错误，不泄露账号状态
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if upgraded != "" {
		user.Password = upgraded
	}
	if err := s.userRepo.Update(user); err != nil {
		logger.Warnw("auth_login_update_user_failed", "user_id", user.ID, "error", err)
	}

	token, expiresAt, err := s.GenerateUserJWT(user, input.RememberMe)
	if err != nil {
		return nil, err
	}
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("auth_login_cache_state_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("auth_login_success", "user_id", user.ID, "remember_me", input.RememberMe)
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyEmail 使用邮件令牌验证邮箱，激活 pending 账号
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	record, err := s.lookupToken(token, constants.VerifyPurposeVerifyEmail)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	if err := s.tokenRepo.MarkUsed(record.ID, now); err != nil {
		return nil, err
	}
	user.EmailVerifiedAt = &now
	if user.Status == constants.UserStatusPending {
		user.Status = constants.UserStatusActive
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("auth_verify_email_cache_del_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("auth_email_verified", "user_id", user.ID)
	return user, nil
}

// SetupAccount 后台创建的账号通过邮件令牌设置密码并激活
func (s *AuthService) SetupAccount(ctx context.Context, token, password string) (*models.User, error) {
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}
	record, err := s.lookupToken(token, constants.VerifyPurposeSetupAccount)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.tokenRepo.MarkUsed(record.ID, now); err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	user.EmailVerifiedAt = &now
	user.Status = constants.UserStatusActive
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("auth_setup_account_cache_del_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("auth_account_setup", "user_id", user.ID)
	return user, nil
}

// ResendVerification 重新发送验证邮件（带发送间隔限制）
func (s *AuthService) ResendVerification(ctx context.Context, email, locale string) error {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil || user.Status != constants.UserStatusPending {
		// 已激活或不存在都静默成功，不暴露账号信息
		return nil
	}

	interval := s.cfg.Email.VerifyToken.SendIntervalSeconds
	if interval > 0 {
		latest, err := s.tokenRepo.LatestByUser(user.ID, constants.VerifyPurposeVerifyEmail)
		if err != nil {
			return err
		}
		if latest != nil && time.Since(latest.CreatedAt) < time.Duration(interval)*time.Second {
			return ErrVerifyTooFrequent
		}
	}
	return s.issueVerification(ctx, user, constants.VerifyPurposeVerifyEmail, locale)
}

// IssueSetupToken 为后台创建的账号签发激活令牌并发送邮件
func (s *AuthService) IssueSetupToken(ctx context.Context, user *models.User, locale string) error {
	return s.issueVerification(ctx, user, constants.VerifyPurposeSetupAccount, locale)
}

// CheckEmailAvailable 邮箱是否可用
func (s *AuthService) CheckEmailAvailable(email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return false, ErrInvalidEmail
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// CheckPhoneAvailable 手机号是否可用
func (s *AuthService) CheckPhoneAvailable(phone string) (bool, error) {
	normalized := strings.TrimSpace(phone)
	if !phonePattern.MatchString(normalized) {
		return false, ErrInvalidParams
	}
	user, err := s.userRepo.GetByPhone(normalized)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}

// ChangePassword 修改密码并使旧 token 失效
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if ok, _ := verifyPassword(user.Password, currentPassword); !ok {
		return ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("auth_change_password_cache_del_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("auth_password_changed", "user_id", user.ID)
	return nil
}

// UpdateProfileInput 个人信息更新输入
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Address  *string
	Avatar   *string
}

// UpdateProfile 更新个人信息
func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !phonePattern.MatchString(phone) {
			return nil, ErrInvalidParams
		}
		if phone != "" && phone != user.Phone {
			existing, err := s.userRepo.GetByPhone(phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrPhoneExists
			}
		}
		user.Phone = phone
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile 查询个人信息
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) lookupToken(token, purpose string) (*models.EmailVerificationToken, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrTokenInvalid
	}
	record, err := s.tokenRepo.GetByToken(trimmed)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Purpose != purpose {
		return nil, ErrTokenInvalid
	}
	if record.UsedAt != nil {
		return nil, ErrTokenUsed
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return record, nil
}

func (s *AuthService) issueVerification(ctx context.Context, user *models.User, purpose, locale string) error {
	if err := s.tokenRepo.VoidPending(user.ID, purpose); err != nil {
		return err
	}

	expireHours := s.cfg.Email.VerifyToken.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	record := &models.EmailVerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(time.Duration(expireHours) * time.Hour),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return err
	}

	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueVerifyEmail(queue.VerifyEmailPayload{
			UserID:  user.ID,
			Token:   record.Token,
			Purpose: purpose,
			Locale:  locale,
		})
	}
	if s.emailService == nil {
		return nil
	}
	err := s.emailService.SendVerificationEmail(user.Email, record.Token, purpose, locale)
	if errors.Is(err, ErrEmailServiceDisabled) || errors.Is(err, ErrEmailServiceNotConfigured) {
		logger.Debugw("auth_verify_email_skipped", "user_id", user.ID, "reason", err.Error())
		return nil
	}
	_ = ctx
	return err
}

// verifyPassword 校验密码，兼容历史明文存储
// 第二个返回值为非空时表示明文命中，调用方应升级为该 bcrypt 哈希
func verifyPassword(stored, password string) (bool, string) {
	if stored == "" || password == "" {
		return false, ""
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, ""
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false, ""
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return true, ""
	}
	return true, string(hashed)
}
