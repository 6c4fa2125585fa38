package validator

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

const (
	minNameLen     = 3
	minPasswordLen = 6
)

// サインアップの入力を検証
func ValidateRegister(name string, email string, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLen {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLen)
	}
	return nil
}

// ログインの入力を検証
func ValidateLogin(email string, password string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateEmail(email string) error {
	if !isEmailLike(email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}

// 簡易メール形式をチェック（表示名つき "A <a@b.c>" は不可）
func isEmailLike(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}
