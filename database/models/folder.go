package models

import "gorm.io/gorm"

type Folder struct {
	gorm.Model
	UserID uint   `gorm:"not null;index"`
	User   User   `gorm:"foreignKey:UserID"`
	Name   string `gorm:"type:varchar(100);not null"`
	Path   string `gorm:"type:varchar(255);not null"`
}
