package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"type:varchar(255);not null;index"`
	Category      string         `gorm:"type:varchar(100);index"`
	SubCategory   string         `gorm:"type:varchar(100)"`
	PriorityScore int            `gorm:"not null;default:0;index"`
	Signal        string         `gorm:"type:text"`
	Contacts      []Contact      `gorm:"foreignKey:CompanyId"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

type Contact struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
}

func (Contact) TableName() string {
	return "contacts"
}
