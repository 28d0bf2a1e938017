package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string  `gorm:"uniqueIndex;not null"`
	Email    *string `gorm:"uniqueIndex"`
	Password string
	Role     string `gorm:"default:user"`
}

// RegisterRequest структура для регистрации пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest структура для входа
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPairResponse пара access/refresh токенов
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterResponse ответ после успешной регистрации
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
}
