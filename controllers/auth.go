package controllers

import (
	"net/http"
	"time"

	dbpkg "zenith/db"
	"zenith/models"
	"zenith/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, email string) (bool, *models.User) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false, nil
	}
	return true, &user
}

func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "invalid email", http.StatusBadRequest)
		return
	}

	if exists, _ := CheckUserExists(c, user.Email); exists {
		RespondError(c, "user already exists", http.StatusBadRequest)
		return
	}

	// mesma regra de senha do Login
	passwordEncode := tools.EncryptTextSHA512(user.Password)
	passwordEncode = user.Email + ":" + passwordEncode
	passwordEncode = tools.EncryptTextSHA512(passwordEncode)
	user.Password = passwordEncode

	if user.Balance.IsNegative() {
		RespondError(c, "balance cannot be negative", http.StatusBadRequest)
		return
	}
	user.Balance = user.Balance.Round(2)

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondCreated(c, user)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email and password are required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	// valida senha (mesma regra usada no CreateUser)
	passwordEncode := tools.EncryptTextSHA512(req.Password)
	passwordEncode = user.Email + ":" + passwordEncode
	passwordEncode = tools.EncryptTextSHA512(passwordEncode)
	if user.Password != passwordEncode {
		RespondError(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	claims, _ := accessTokenClaims(user.ID, user.Email, now)
	signed, err := signHS256JWT(getJWTSecret(), claims)
	if err != nil {
		RespondError(c, "failed to sign token", http.StatusInternalServerError)
		return
	}

	refresh, err := issueRefreshToken(db, user.ID, now)
	if err != nil {
		RespondError(c, "failed to issue refresh token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, RefreshToken: refresh, User: user})
}
