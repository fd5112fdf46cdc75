package models

import (
	"fmt"
	"strings"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

func (r RegisterUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(r.Pin) == "" {
		return fmt.Errorf("pin is required")
	}
	return nil
}

type VerifyPinRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

func (r VerifyPinRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(r.Pin) == "" {
		return fmt.Errorf("pin is required")
	}
	return nil
}

type RegisterUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type VerifyPinResponse struct {
	Username   string `json:"username"`
	IsValidPin bool   `json:"isValidPin"`
}
