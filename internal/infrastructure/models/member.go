package models

import (
	"time"
)

type Member struct {
	ID            uint       `gorm:"primaryKey"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone         string     `gorm:"type:varchar(10);not null"`
	BloodGroup    string     `gorm:"type:varchar(3);not null"`
	Category      string     `gorm:"type:varchar(50);not null"`
	PhotoURL      string     `gorm:"type:text;not null"`
	Address       string     `gorm:"type:text;not null"`
	PaymentAmount string     `gorm:"type:varchar(20);not null"`
	PaymentStatus string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CardNumber    string     `gorm:"type:varchar(20);uniqueIndex"`
	OrderID       *string    `gorm:"type:varchar(64);index"`
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
