package service

import (
	"strings"

	"github.com/roikaa/tamshopex/internal/constants"
)

// orderStatuses 订单状态全集
var orderStatuses = map[string]struct{}{
	constants.OrderStatusPending:    {},
	constants.OrderStatusProcessing: {},
	constants.OrderStatusShipped:    {},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
}

// NormalizeOrderStatus 统一订单状态格式（大写、去空白）
func NormalizeOrderStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// IsValidOrderStatus 校验订单状态取值
func IsValidOrderStatus(status string) bool {
	_, ok := orderStatuses[NormalizeOrderStatus(status)]
	return ok
}
