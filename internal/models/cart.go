package models

import "time"

// Cart 购物车表
// 用户与游客各自最多持有一个购物车：user_id 与 session_id 恰好一个非空。
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	UserID    *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`     // 用户ID（游客购物车为空）
	SessionID *string   `gorm:"uniqueIndex" json:"session_id,omitempty"`  // 游客会话标识（用户购物车为空）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                  // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
