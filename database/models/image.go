package models

import "gorm.io/gorm"

type Image struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;index"`
	URL         string `gorm:"not null"`
	StorageKey  string `gorm:"not null" json:"-"`
	FileSize    int64  `gorm:"not null"`
	ContentType string `gorm:"not null"`

	// FolderID 为空表示未归档（根目录）
	FolderID *uint   `gorm:"index"`
	Folder   *Folder `gorm:"foreignKey:FolderID"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`
}
