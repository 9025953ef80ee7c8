package models

import "time"

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`             // 主键
	Name        string    `gorm:"uniqueIndex;not null" json:"name"` // 分类名称（唯一）
	Description string    `gorm:"type:text" json:"description"`     // 分类描述
	CreatedAt   time.Time `gorm:"index" json:"created_at"`          // 创建时间

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"` // 分类下商品
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
