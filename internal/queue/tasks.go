package queue

import (
	"encoding/json"

	"github.com/roikaa/tamshopex/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedEmail 下单成功邮件通知任务
	TaskOrderPlacedEmail = constants.TaskOrderPlacedEmail
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
)

// OrderPlacedEmailPayload 下单成功邮件任务载荷
type OrderPlacedEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Email   string `json:"email"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

// NewOrderPlacedEmailTask 创建下单成功邮件任务
func NewOrderPlacedEmailTask(payload OrderPlacedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedEmail, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}
