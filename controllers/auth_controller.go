package controllers

import (
	"errors"
	"time"

	"gudang-app/config"
	"gudang-app/models"
	"gudang-app/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// Parsing request body
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
		})
	}

	if input.Username == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	sessionID := uuid.NewString()
	now := time.Now()

	// default log FAILED
	loginLog := models.LoginLog{
		SessionID:   sessionID,
		Username:    input.Username,
		LoginAt:     &now,
		IPAddress:   ctx.IP(),
		UserAgent:   string(ctx.Request().Header.UserAgent()),
		LoginStatus: "FAILED",
		CreatedAt:   now,
	}

	var mUser models.User
	result := c.DB.Where("username = ?", input.Username).First(&mUser)

	// Periksa jika user tidak ditemukan
	if result.Error != nil {
		reason := "USER_NOT_FOUND"
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": result.Error.Error(),
		})
	}

	// cek password
	if bcrypt.CompareHashAndPassword([]byte(mUser.Password), []byte(input.Password)) != nil {
		reason := "WRONG_PASSWORD"
		loginLog.UserID = &mUser.ID
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid username or password",
		})
	}

	loginLog.UserID = &mUser.ID
	loginLog.LoginStatus = "SUCCESS"
	c.DB.Create(&loginLog)

	// Buat access token JWT
	claims := jwt.MapClaims{
		"user_id":    mUser.ID,
		"username":   mUser.Username,
		"role":       mUser.Role,
		"session_id": sessionID,
		"exp":        now.Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to sign token",
		})
	}

	ctx.Cookie(config.GetTokenCookie(signedToken))

	logger.Info().Str("username", mUser.Username).Msg("User logged in")

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":    signedToken,
			"username": mUser.Username,
			"role":     mUser.Role,
		},
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	username, _ := ctx.Locals("username").(string)
	now := time.Now()

	// Update logout_at di login_logs
	result := c.DB.Model(&models.LoginLog{}).
		Where("username = ? AND logout_at IS NULL AND login_status = ?", username, "SUCCESS").
		Update("logout_at", &now)

	if result.RowsAffected == 0 {
		// bukan error fatal, bisa karena double logout / token lama
		logger.Warn().Str("username", username).Msg("No login log found to update logout_at")
	}

	// Hapus token dari cookie
	ctx.Cookie(config.GetTokenCookie(""))

	logger.Info().Str("username", username).Msg("User logged out")

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (c *AuthController) IsLoggedIn(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"username": ctx.Locals("username"),
			"role":     ctx.Locals("role"),
		},
	})
}
