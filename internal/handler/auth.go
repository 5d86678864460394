package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dining-sim/internal/config"
	"github.com/iliyamo/dining-sim/internal/utils"
)

// RoleOperator is the only role allowed to start simulations.
const RoleOperator = "OPERATOR"

// AuthHandler exchanges the operator credentials for an access token.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type tokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	Role    string    `json:"role"`
}

// Token handles POST /v1/auth/token.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	// Always run bcrypt so an unknown user costs as much as a wrong password.
	ok := utils.VerifyPassword(h.Cfg.OperatorPasswordHash, req.Password)
	if !ok || req.Username != h.Cfg.OperatorUser {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, RoleOperator, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: access.Token, Expires: access.Exp, Role: RoleOperator})
}
