package service

import "strings"

// Identity 购物车归属标识
// 登录用户以 UserID 标识，游客以 SessionID 标识，两者恰有其一。
type Identity struct {
	UserID    uint
	SessionID string
}

// UserIdentity 构造登录用户标识
func UserIdentity(userID uint) Identity {
	return Identity{UserID: userID}
}

// GuestIdentity 构造游客标识
func GuestIdentity(sessionID string) Identity {
	return Identity{SessionID: strings.TrimSpace(sessionID)}
}

// Valid 标识是否可用
func (i Identity) Valid() bool {
	return i.UserID != 0 || strings.TrimSpace(i.SessionID) != ""
}

// IsUser 是否为登录用户标识
func (i Identity) IsUser() bool {
	return i.UserID != 0
}
