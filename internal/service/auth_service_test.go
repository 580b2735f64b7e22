package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.EmailVerificationToken{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.JWT.RememberMeExpireHours = 720
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	cfg.Email.VerifyToken.ExpireHours = 24
	cfg.Email.VerifyToken.SendIntervalSeconds = 60
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewEmailTokenRepository(db),
		nil,
		nil,
		cfg,
	)
	return svc, db
}

func TestRegisterCreatesPendingUserWithToken(t *testing.T) {
	svc, db := setupAuthTest(t)
	user, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Nguyen Van A",
		Email:    " User@Example.COM ",
		Phone:    "0912345678",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Status != constants.UserStatusPending {
		t.Fatalf("expected pending status, got %s", user.Status)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if strings.HasPrefix(user.Password, "secret") {
		t.Fatalf("password must be hashed")
	}

	var token models.EmailVerificationToken
	if err := db.Where("user_id = ? AND purpose = ?", user.ID, constants.VerifyPurposeVerifyEmail).First(&token).Error; err != nil {
		t.Fatalf("expected verification token, got error: %v", err)
	}
	if !token.Usable(time.Now()) {
		t.Fatalf("expected usable token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthTest(t)
	input := RegisterInput{Email: "dup@example.com", Password: "secret-pass-1"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterInvalidPhone(t *testing.T) {
	svc, _ := setupAuthTest(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "phone@example.com",
		Phone:    "abc123",
		Password: "secret-pass-1",
	})
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := setupAuthTest(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "weak@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginPendingAccountRejected(t *testing.T) {
	svc, _ := setupAuthTest(t)
	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "pending@example.com",
		Password: "secret-pass-1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.Login(context.Background(), LoginInput{Identifier: "pending@example.com", Password: "secret-pass-1"})
	if !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestVerifyEmailActivatesAndLoginWorks(t *testing.T) {
	svc, db := setupAuthTest(t)
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "flow@example.com",
		Phone:    "0987654321",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var token models.EmailVerificationToken
	if err := db.Where("user_id = ?", user.ID).First(&token).Error; err != nil {
		t.Fatalf("load token failed: %v", err)
	}
	verified, err := svc.VerifyEmail(context.Background(), token.Token)
	if err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	if verified.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", verified.Status)
	}
	if verified.EmailVerifiedAt == nil {
		t.Fatalf("expected email_verified_at set")
	}

	// 邮箱登录
	result, err := svc.Login(context.Background(), LoginInput{Identifier: "flow@example.com", Password: "secret-pass-1"})
	if err != nil {
		t.Fatalf("email login failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 手机号登录
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "0987654321", Password: "secret-pass-1"}); err != nil {
		t.Fatalf("phone login failed: %v", err)
	}

	// 验证令牌不可二次使用
	if _, err := svc.VerifyEmail(context.Background(), token.Token); !errors.Is(err, ErrTokenUsed) {
		t.Fatalf("expected ErrTokenUsed on reuse, got %v", err)
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, db := setupAuthTest(t)
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "expired@example.com",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.EmailVerificationToken{}).
		Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire token failed: %v", err)
	}
	var token models.EmailVerificationToken
	db.Where("user_id = ?", user.ID).First(&token)
	if _, err := svc.VerifyEmail(context.Background(), token.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	svc, _ := setupAuthTest(t)
	if _, err := svc.VerifyEmail(context.Background(), "no-such-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestResendVerificationThrottled(t *testing.T) {
	svc, _ := setupAuthTest(t)
	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "resend@example.com",
		Password: "secret-pass-1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.ResendVerification(context.Background(), "resend@example.com", "vi"); !errors.Is(err, ErrVerifyTooFrequent) {
		t.Fatalf("expected ErrVerifyTooFrequent right after register, got %v", err)
	}
	// 未注册邮箱静默成功
	if err := svc.ResendVerification(context.Background(), "ghost@example.com", "vi"); err != nil {
		t.Fatalf("expected silent success for unknown email, got %v", err)
	}
}

func TestResendVerificationSupersedesOldToken(t *testing.T) {
	svc, db := setupAuthTest(t)
	svc.cfg.Email.VerifyToken.SendIntervalSeconds = 0
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "supersede@example.com",
		Password: "secret-pass-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	var first models.EmailVerificationToken
	db.Where("user_id = ?", user.ID).Order("id ASC").First(&first)

	if err := svc.ResendVerification(context.Background(), "supersede@example.com", "vi"); err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	if _, err := svc.VerifyEmail(context.Background(), first.Token); !errors.Is(err, ErrTokenInvalid) && !errors.Is(err, ErrTokenUsed) {
		t.Fatalf("expected superseded token to be rejected, got %v", err)
	}
	var latest models.EmailVerificationToken
	db.Where("user_id = ?", user.ID).Order("id DESC").First(&latest)
	if _, err := svc.VerifyEmail(context.Background(), latest.Token); err != nil {
		t.Fatalf("latest token should verify, got %v", err)
	}
}

func TestLoginUpgradesPlaintextPassword(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := &models.User{
		FullName: "Legacy",
		Email:    "legacy@example.com",
		Password: "legacy-plain-pass",
		Role:     constants.RoleCustomer,
		Status:   constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{Identifier: "legacy@example.com", Password: "legacy-plain-pass"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !strings.HasPrefix(reloaded.Password, "$2") {
		t.Fatalf("expected password upgraded to bcrypt, got %s", reloaded.Password)
	}
	// 升级后旧密码仍然有效
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "legacy@example.com", Password: "legacy-plain-pass"}); err != nil {
		t.Fatalf("login after upgrade failed: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, db := setupAuthTest(t)
	seedActiveUser(t, db, "active@example.com", "0911222333", "secret-pass-1")
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "active@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "missing@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginInactiveAccountHidden(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := seedActiveUser(t, db, "blocked@example.com", "0922333444", "secret-pass-1")
	db.Model(user).Update("status", constants.UserStatusInactive)

	// 停用账号返回与密码错误一致的错误
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "blocked@example.com", Password: "secret-pass-1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := seedActiveUser(t, db, "rotate@example.com", "0933444555", "secret-pass-1")

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "another-pass-1"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "secret-pass-1", "another-pass-1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if reloaded.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", reloaded.TokenVersion)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Identifier: "rotate@example.com", Password: "another-pass-1"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, db := setupAuthTest(t)
	seedActiveUser(t, db, "taken@example.com", "0944555666", "secret-pass-1")

	available, err := svc.CheckEmailAvailable("taken@example.com")
	if err != nil || available {
		t.Fatalf("expected taken email, available=%v err=%v", available, err)
	}
	available, err = svc.CheckEmailAvailable("free@example.com")
	if err != nil || !available {
		t.Fatalf("expected free email, available=%v err=%v", available, err)
	}
	if _, err := svc.CheckEmailAvailable("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	available, err = svc.CheckPhoneAvailable("0944555666")
	if err != nil || available {
		t.Fatalf("expected taken phone, available=%v err=%v", available, err)
	}
	if _, err := svc.CheckPhoneAvailable("12"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for short phone, got %v", err)
	}
}

func TestUpdateProfilePhoneConflict(t *testing.T) {
	svc, db := setupAuthTest(t)
	seedActiveUser(t, db, "one@example.com", "0955666777", "secret-pass-1")
	second := seedActiveUser(t, db, "two@example.com", "0966777888", "secret-pass-1")

	conflict := "0955666777"
	if _, err := svc.UpdateProfile(second.ID, UpdateProfileInput{Phone: &conflict}); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}

	fresh := "0910101010"
	updated, err := svc.UpdateProfile(second.ID, UpdateProfileInput{Phone: &fresh})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Phone != fresh {
		t.Fatalf("expected phone updated, got %s", updated.Phone)
	}
}

func seedActiveUser(t *testing.T, db *gorm.DB, email, phone, password string) *models.User {
	t.Helper()
	hashed := hashPasswordForTest(t, password)
	now := time.Now()
	user := &models.User{
		FullName:        "Test User",
		Email:           email,
		Phone:           phone,
		Password:        hashed,
		Role:            constants.RoleCustomer,
		Status:          constants.UserStatusActive,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func hashPasswordForTest(t *testing.T, password string) string {
	t.Helper()
	ok, upgraded := verifyPassword(password, password)
	if !ok || upgraded == "" {
		t.Fatalf("hash password failed")
	}
	return upgraded
}
