package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvhien/learnhub/config"
	"github.com/mvhien/learnhub/internal/auth"
	"github.com/mvhien/learnhub/internal/dto"
	"github.com/rs/zerolog/log"
)

// AuthController mints development tokens. Only wired when
// AUTH_DEV_TOKENS is enabled; real token issuance lives in the identity
// service in front of this API.
type AuthController struct {
	tokenManager *auth.TokenManager
	cfg          *config.Config
}

func NewAuthController(tm *auth.TokenManager, cfg *config.Config) *AuthController {
	return &AuthController{tokenManager: tm, cfg: cfg}
}

// DevToken godoc
// @Summary Issue a development token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.DevTokenDTO true "User and role"
// @Success 200 {object} dto.TokenResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Dev tokens disabled"
// @Router /auth/dev-token [post]
func (c *AuthController) DevToken(ctx *gin.Context) {
	if !c.cfg.Auth.DevTokens {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
		return
	}
	var req dto.DevTokenDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	token, err := c.tokenManager.Generate(req.UserID, req.Role)
	if err != nil {
		log.Error().Err(err).Msg("DevToken: failed to sign token")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to issue token"})
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponseDTO{Token: token})
}
