package models

import (
	"time"

	"zenith/tools"

	"github.com/shopspring/decimal"
)

// User representa uma conta no sistema.
// Balance é sempre não-negativo, com duas casas decimais.
type User struct {
	ID        int64           `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string          `gorm:"not null" json:"name" form:"name"`
	Email     string          `gorm:"not null;unique" json:"email" form:"email"`
	Password  string          `gorm:"not null" json:"password" form:"password"`
	Balance   decimal.Decimal `gorm:"type:numeric;not null" json:"balance"`
	CreatedAt *time.Time      `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
