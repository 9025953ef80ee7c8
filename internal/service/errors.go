package service

import "errors"

// 服务层统一错误定义
var (
	ErrNotFound             = errors.New("记录不存在")
	ErrIdentityRequired     = errors.New("缺少用户或会话标识")
	ErrInvalidOrderInput    = errors.New("订单输入不合法")
	ErrInvalidOrderItem     = errors.New("订单项不合法")
	ErrProductNotFound      = errors.New("商品不存在")
	ErrInsufficientStock    = errors.New("商品库存不足")
	ErrCartItemNotFound     = errors.New("购物车项不存在")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrInvalidOrderStatus   = errors.New("订单状态不合法")
	ErrOrderNotCancellable  = errors.New("订单无法取消")
	ErrInvalidCategoryName  = errors.New("分类名称不合法")
	ErrCategoryNameTaken    = errors.New("分类名称已存在")
	ErrCategoryHasProducts  = errors.New("分类下仍有商品")
	ErrEmailExists          = errors.New("邮箱已被注册")
	ErrInvalidEmail         = errors.New("邮箱格式不合法")
	ErrInvalidCredentials   = errors.New("邮箱或密码错误")
	ErrPasswordTooShort     = errors.New("密码长度不足")
	ErrCaptchaRequired      = errors.New("需要验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrCaptchaConfigInvalid = errors.New("验证码配置不合法")
	ErrEmailNotConfigured   = errors.New("邮件服务未配置")
	ErrEmailDisabled        = errors.New("邮件服务未启用")
	ErrEmailSendFailed      = errors.New("邮件发送失败")
)
