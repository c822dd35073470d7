package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/internal/auth"
	"github.com/auriko/image-vault/utils"
	"github.com/gin-gonic/gin"
)

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// LoginHandler 登录接口处理器
type LoginHandler struct {
	loginService *auth.LoginService
}

// NewLoginHandler 创建登录接口处理器
func NewLoginHandler(loginService *auth.LoginService) *LoginHandler {
	return &LoginHandler{loginService: loginService}
}

// LoginHandlerFunc user login
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			common.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login error for user %s: %v", utils.SanitizeLogUsername(req.Username), err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondData(c, http.StatusOK, loginResponse{
		AccessToken:       result.AccessToken,
		AccessTokenExpiry: result.AccessTokenExpiry.Unix(),
	})
}
