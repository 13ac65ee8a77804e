// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("password exceeds %d bytes", MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password with a bcrypt hash. A mismatch yields
// ErrInvalidCredentials.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

// PasswordPolicy holds the rules applied when a password is chosen.
type PasswordPolicy struct {
	MinLength int

	// ForbidCommon rejects passwords from a short list of breached ones.
	ForbidCommon bool

	// ForbidNumeric rejects passwords made only of digits.
	ForbidNumeric bool

	// ForbidSimilar rejects passwords containing the username or the local
	// part of the e-mail (and the reverse).
	ForbidSimilar bool
}

// DefaultPasswordPolicy returns the policy used for registration and
// password changes.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:     8,
		ForbidCommon:  true,
		ForbidNumeric: true,
		ForbidSimilar: true,
	}
}

// Check returns every rule the password breaks. An empty result means the
// password is acceptable.
func (p PasswordPolicy) Check(password, username, email string) []string {
	var problems []string

	if len([]rune(password)) < p.MinLength {
		problems = append(problems, fmt.Sprintf("This password is too short. It must contain at least %d characters.", p.MinLength))
	}
	if len(password) > MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf("This password is too long. It must not exceed %d bytes.", MaxPasswordBytes))
	}
	if p.ForbidCommon && isCommonPassword(password) {
		problems = append(problems, "This password is too common.")
	}
	if p.ForbidNumeric && password != "" && isAllDigits(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if p.ForbidSimilar {
		localPart, _, _ := strings.Cut(email, "@")
		for _, attr := range []string{username, localPart} {
			if isSimilar(password, attr) {
				problems = append(problems, "The password is too similar to the username or e-mail.")
				break
			}
		}
	}
	return problems
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isSimilar reports whether one value contains the other, ignoring case.
// Attributes shorter than three characters are ignored.
func isSimilar(password, attr string) bool {
	if len(attr) < 3 || password == "" {
		return false
	}
	p := strings.ToLower(password)
	a := strings.ToLower(attr)
	return strings.Contains(p, a) || strings.Contains(a, p)
}

var commonPasswords = map[string]struct{}{
	"123456": {}, "123456789": {}, "12345678": {}, "1234567890": {},
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"qwerty": {}, "qwerty123": {}, "qwertyuiop": {}, "1q2w3e4r": {},
	"abc123": {}, "abcd1234": {}, "iloveyou": {}, "sunshine": {},
	"letmein": {}, "welcome": {}, "welcome1": {}, "monkey": {},
	"dragon": {}, "football": {}, "baseball": {}, "superman": {},
	"trustno1": {}, "princess": {}, "admin": {}, "admin123": {},
	"changeme": {}, "secret": {}, "11111111": {}, "00000000": {},
	"recipe": {}, "recipes": {}, "foodgram": {}, "cooking": {},
}

func isCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}
