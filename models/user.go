package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Name     string `gorm:"not null" json:"name"`
    Email    string `gorm:"uniqueIndex;not null" json:"email"`
    Password string `gorm:"not null" json:"-"`
    Timezone string `gorm:"default:UTC" json:"timezone"`
}
