package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/cache"
	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo Google userinfo 接口返回
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// OAuthService Google 第三方登录服务
type OAuthService struct {
	userRepo    repository.UserRepository
	authService *AuthService
	cfg         *config.GoogleOAuthConfig
	httpClient  *http.Client
}

// NewOAuthService 创建第三方登录服务
func NewOAuthService(userRepo repository.UserRepository, authService *AuthService, cfg *config.GoogleOAuthConfig) *OAuthService {
	timeout := 10 * time.Second
	if cfg != nil && cfg.ExchangeTimeoutMS > 0 {
		timeout = time.Duration(cfg.ExchangeTimeoutMS) * time.Millisecond
	}
	return &OAuthService{
		userRepo:    userRepo,
		authService: authService,
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Enabled 判断 Google 登录是否启用
func (s *OAuthService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

func (s *OAuthService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		RedirectURL:  s.cfg.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// AuthURL 生成授权跳转地址，state 随机数写入 Redis 防止 CSRF
func (s *OAuthService) AuthURL(ctx context.Context) (string, error) {
	if !s.Enabled() {
		return "", ErrOAuthDisabled
	}
	state := uuid.NewString()
	ttl := time.Duration(s.cfg.StateTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := cache.SetString(ctx, oauthStateKey(state), "1", ttl); err != nil {
		return "", err
	}
	return s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// HandleCallback 处理授权回调：校验 state、换取 token、按邮箱建档并登录
func (s *OAuthService) HandleCallback(ctx context.Context, state, code string) (*LoginResult, error) {
	if !s.Enabled() {
		return nil, ErrOAuthDisabled
	}
	if strings.TrimSpace(state) == "" || strings.TrimSpace(code) == "" {
		return nil, ErrOAuthState
	}
	if cache.Enabled() {
		_, found, err := cache.TakeString(ctx, oauthStateKey(state))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrOAuthState
		}
	}

	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauthConfig().Exchange(exchangeCtx, code)
	if err != nil {
		logger.Warnw("oauth_exchange_failed", "error", err)
		return nil, ErrOAuthExchange
	}

	info, err := s.fetchUserInfo(exchangeCtx, token)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		return nil, ErrOAuthExchange
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if user == nil {
		user = &models.User{
			FullName:        strings.TrimSpace(info.Name),
			Email:           email,
			Avatar:          info.Picture,
			Role:            constants.RoleCustomer,
			Status:          constants.UserStatusActive,
			EmailVerifiedAt: &now,
		}
		if user.FullName == "" {
			user.FullName = email
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		logger.Infow("oauth_user_provisioned", "user_id", user.ID, "email", email)
	} else {
		if user.Status == constants.UserStatusInactive {
			return nil, ErrUserDisabled
		}
		// Google 登录视同完成邮箱验证
		if user.EmailVerifiedAt == nil {
			user.EmailVerifiedAt = &now
		}
		if user.Status == constants.UserStatusPending {
			user.Status = constants.UserStatusActive
		}
		if user.Avatar == "" {
			user.Avatar = info.Picture
		}
	}
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		logger.Warnw("oauth_update_user_failed", "user_id", user.ID, "error", err)
	}

	jwtToken, expiresAt, err := s.authService.GenerateUserJWT(user, true)
	if err != nil {
		return nil, err
	}
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("oauth_cache_state_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("oauth_login_success", "user_id", user.ID)
	return &LoginResult{User: user, Token: jwtToken, ExpiresAt: expiresAt}, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	infoURL := strings.TrimSpace(s.cfg.UserInfoURL)
	if infoURL == "" {
		infoURL = defaultGoogleUserInfoURL
	}
	client := s.oauthConfig().Client(ctx, token)
	resp, err := client.Get(infoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warnw("oauth_userinfo_failed", "status", resp.StatusCode, "body", string(body))
		return nil, ErrOAuthExchange
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func oauthStateKey(state string) string {
	return fmt.Sprintf("oauth:google:state:%s", state)
}
