package models

import (
	"gorm.io/gorm"
)

// Signup is an append-only enrollment record. There are no update or
// delete paths; the admin listing is the only reader.
type Signup struct {
	gorm.Model
	Course       string `json:"course"`
	FullName     string `json:"full_name"`
	Address      string `json:"address"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Participants int    `json:"participants"`
	Notes        string `json:"notes"`
}
