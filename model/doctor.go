package model

import "gorm.io/gorm"

// Doctor represents a roster entry managed by administrators.
// @Description Doctor roster record
type Doctor struct {
	gorm.Model
	Name      string `json:"name" gorm:"column:name;type:varchar(191);not null" example:"Dr. Jane Smith"`
	Email     string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex;not null" example:"dr.jane@example.com"`
	Specialty string `json:"specialty" gorm:"column:specialty;type:varchar(191);not null" example:"Cosmetic Dentistry"`
	ImageURL  string `json:"image" gorm:"column:image_url;type:varchar(512)" example:"https://example.com/dr-jane.jpg"`
	Bio       string `json:"bio" gorm:"column:bio;type:text" example:"15 years of practice"`
}
