package controllers

import (
	"net/http"
	"time"

	dbpkg "zenith/db"
	"zenith/models"
	"zenith/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken        string `json:"access_token"`
	AccessExpiresAt    int64  `json:"access_expires_at"`     // unix seconds
	AccessExpiresAtISO string `json:"access_expires_at_iso"` // RFC3339
	RefreshToken       string `json:"refresh_token"`
}

// Refresh troca um refresh token válido por um novo par (access+refresh).
// Regras de segurança:
// - Não armazenamos o token em texto no DB (apenas hash)
// - Rotação: ao usar, revogamos tokens anteriores e emitimos um novo
// - Sessão única: revoga TODOS os refresh tokens ativos do usuário (incluindo o atual)
func Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		RespondError(c, "refresh_token is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	hash := tools.EncryptTextSHA512(req.RefreshToken)

	var stored models.RefreshToken
	if err := db.Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		RespondError(c, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	if !stored.Usable(now) {
		RespondError(c, "expired refresh token", http.StatusUnauthorized)
		return
	}

	if err := revokeAllUserRefreshTokens(db, stored.UserID, now); err != nil {
		RespondError(c, "failed to revoke previous sessions", http.StatusInternalServerError)
		return
	}

	claims, accessExp := accessTokenClaims(stored.UserID, "", now)
	accessToken, err := signHS256JWT(getJWTSecret(), claims)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	newRefresh, err := issueRefreshToken(db, stored.UserID, now)
	if err != nil {
		RespondError(c, "failed to issue refresh token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, RefreshResponse{
		AccessToken:        accessToken,
		AccessExpiresAt:    accessExp.Unix(),
		AccessExpiresAtISO: accessExp.UTC().Format(time.RFC3339),
		RefreshToken:       newRefresh,
	})
}

// issueRefreshToken gera um token novo, guarda só o hash e devolve o texto.
func issueRefreshToken(db *gorm.DB, userID int64, now time.Time) (string, error) {
	codeLen := getenvInt("REFRESH_CODE_LEN", 32)
	maxValidDays := getenvInt("REFRESH_CODE_MAX_VALID_DAYS", 30)

	token := tools.RandomString(codeLen)
	expires := now.AddDate(0, 0, maxValidDays)

	stored := models.RefreshToken{
		UserID:    userID,
		TokenHash: tools.EncryptTextSHA512(token),
		ExpiresAt: &expires,
	}
	if err := db.Create(&stored).Error; err != nil {
		return "", err
	}
	return token, nil
}

func revokeAllUserRefreshTokens(db *gorm.DB, userID int64, now time.Time) error {
	return db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}
