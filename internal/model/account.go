package model

import (
	"time"
)

type AccountRole string

const (
	RoleOwner  AccountRole = "owner"
	RoleAdmin  AccountRole = "admin"
	RoleMember AccountRole = "member"
)

// CanManage reports whether the role may edit or delete any article in the
// account, not only its own.
func (r AccountRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Account is the multi-tenant ownership boundary for articles: a personal
// or team workspace.
type Account struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex:idx_slug" json:"slug"`
	Personal  bool      `gorm:"type:tinyint(1);not null;default:0" json:"personal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

type AccountUser struct {
	AccountID uint64      `gorm:"primaryKey" json:"accountId"`
	UserID    uint64      `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	Role      AccountRole `gorm:"type:varchar(16);not null;default:member" json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (AccountUser) TableName() string {
	return "account_user"
}
