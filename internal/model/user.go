package model

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID      int64   `gorm:"column:id;primaryKey" json:"id"`
	Name    string  `gorm:"column:name" json:"name"`
	OrgName *string `gorm:"column:org_name" json:"org_name,omitempty"`
	Role    Role    `gorm:"column:role" json:"role"`
	Email   string  `gorm:"column:email" json:"email"`
	// Password holds the pbkdf2 hash, never the original value.
	Password string `gorm:"column:password" json:"-"`
}

func (User) TableName() string { return "users" }
