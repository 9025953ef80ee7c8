package constants

// 订单状态常量
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// 用户角色常量
const (
	UserRoleUser  = "USER"
	UserRoleAdmin = "ADMIN"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskOrderPlacedEmail   = "order:placed_email"
	TaskOrderStatusEmail   = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ts"
)

// 购物车身份请求头常量
const (
	SessionIDHeader = "X-Session-ID"
)
