package models

import "gorm.io/gorm"

type School struct {
	gorm.Model
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Student struct {
	gorm.Model
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SchoolID  uint   `json:"school_id" gorm:"index"`
	School    School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Address   string `json:"address"`
}
