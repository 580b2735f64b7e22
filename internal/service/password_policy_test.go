package service

import (
	"errors"
	"testing"

	"github.com/laptopstore-next/internal/config"
)

func TestValidatePasswordDisabledPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should accept anything, got %v", err)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	err := validatePassword(policy, "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var detail interface {
		Key() string
		Args() []interface{}
	}
	if !errors.As(err, &detail) {
		t.Fatalf("expected localizable policy error, got %T", err)
	}
	if detail.Key() != "error.password_min_length" {
		t.Fatalf("unexpected key %s", detail.Key())
	}
	if len(detail.Args()) != 1 || detail.Args()[0] != 8 {
		t.Fatalf("expected min length arg, got %+v", detail.Args())
	}

	// 多字节字符按 rune 计数
	if err := validatePassword(policy, "mậtkhẩu8"); err != nil {
		t.Fatalf("8-rune password should pass, got %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		password string
		wantKey  string
	}{
		{"lower1!", "error.password_require_upper"},
		{"UPPER1!", "error.password_require_lower"},
		{"Upperx!", "error.password_require_number"},
		{"Upperx1", "error.password_require_special"},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%q expected ErrWeakPassword, got %v", tc.password, err)
		}
		var detail interface{ Key() string }
		if !errors.As(err, &detail) || detail.Key() != tc.wantKey {
			t.Fatalf("%q expected key %s, got %v", tc.password, tc.wantKey, err)
		}
	}
	if err := validatePassword(policy, "Upper1!x"); err != nil {
		t.Fatalf("compliant password rejected: %v", err)
	}
}
