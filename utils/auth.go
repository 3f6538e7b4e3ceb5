package utils

import (
	"jadwalbot/config"
)

// CheckAuth 检查用户是否为配置的管理员
func CheckAuth(userID string) bool {
	adminID := config.Cfg.Commands.Auth.AdminID
	return adminID != "" && userID == adminID
}
