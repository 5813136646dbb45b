package utils

import (
	"encoding/json"
	"fmt"

	"github.com/leadflow/leadflow_end/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser 当前登录用户信息
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Scope 返回该用户的线索可见范围
func (u *LoginUser) Scope() models.OwnerScope {
	return models.OwnerScope{
		UserID: u.ID,
		Role:   models.UserRole(u.Role),
	}
}

// GetUser 从请求上下文取出认证中间件存入的用户信息
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("GetUser 未授权访问")
	}

	// 处理不同类型的 claims
	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = make(map[string]interface{})
		for key, val := range v {
			claims[key] = val
		}
	case map[string]interface{}:
		claims = v
	default:
		// 尝试通过 JSON 序列化/反序列化转换
		data, err := json.Marshal(currentUser)
		if err != nil {
			return nil, fmt.Errorf("序列化用户信息失败: %v", err)
		}
		if err := json.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("反序列化用户信息失败: %v", err)
		}
	}

	// 获取用户信息字段
	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户ID")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户角色")
	}

	name, ok := claims["name"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户名")
	}

	email, _ := claims["email"].(string)

	return &LoginUser{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  role,
	}, nil
}

// IsElevatedRole 是否为管理员或经理
func IsElevatedRole(role string) bool {
	return role == string(models.UserRoleADMIN) || role == string(models.UserRoleMANAGER)
}
