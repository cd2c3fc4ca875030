package models

// User is created once at signup and never modified afterwards.
type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}
