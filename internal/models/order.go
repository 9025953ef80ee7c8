package models

import "time"

// Order 订单表
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                               // 主键
	UserID          *uint     `gorm:"index" json:"user_id,omitempty"`                     // 用户ID（游客订单为空）
	CustomerName    string    `gorm:"not null" json:"customer_name"`                      // 收件人姓名
	CustomerEmail   string    `gorm:"index;not null" json:"customer_email"`               // 收件人邮箱
	ShippingAddress string    `gorm:"type:text;not null" json:"shipping_address"`         // 收货地址（电话/备注追加为独立行）
	PaymentMethod   string    `gorm:"not null" json:"payment_method"`                     // 支付方式
	Total           Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 订单总额（下单时冻结）
	Status          string    `gorm:"index;not null" json:"status"`                       // 订单状态
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time `gorm:"index" json:"updated_at"`                            // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
