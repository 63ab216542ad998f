package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/services"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// AuthHandler is the entry surface for registration, logins, one-time codes,
// and password resets.
type AuthHandler struct {
	auth   *services.AuthService
	otp    *services.OTPService
	reset  *services.PasswordResetService
	tokens *services.TokenService
	// echoCodes controls whether generated codes are returned to the caller.
	// Production deployments deliver over SMS/email instead.
	echoCodes bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, otp *services.OTPService, reset *services.PasswordResetService, tokens *services.TokenService, echoCodes bool) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		otp:       otp,
		reset:     reset,
		tokens:    tokens,
		echoCodes: echoCodes,
	}
}

// Register handles new account creation
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg models.UserRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	user, err := h.auth.Register(&reg)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(ve.Fields)
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"email": "email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

type otpRequestBody struct {
	Mobile string `json:"mobile"`
}

// OTPRequest handles one-time login code generation
func (h *AuthHandler) OTPRequest(c *fiber.Ctx) error {
	var body otpRequestBody
	if err := c.BodyParser(&body); err != nil || body.Mobile == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"mobile": "this field is required",
		})
	}

	otp, err := h.otp.Request(body.Mobile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to generate otp",
		})
	}

	resp := fiber.Map{
		"id":         otp.ID,
		"mobile":     otp.Mobile,
		"expires_at": otp.ExpiresAt,
	}
	if h.echoCodes {
		resp["otp"] = otp.Code
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

type otpVerifyBody struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// OTPVerify handles one-time code verification. Success is terminal here;
// chaining into token issuance is a caller decision.
func (h *AuthHandler) OTPVerify(c *fiber.Ctx) error {
	var body otpVerifyBody
	if err := c.BodyParser(&body); err != nil || body.Mobile == "" || body.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "mobile and otp are required",
		})
	}

	otp, err := h.otp.Verify(body.Mobile, body.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "invalid otp",
			})
		case errors.Is(err, services.ErrOTPExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "otp expired or already used",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "failed to verify otp",
			})
		}
	}

	return c.JSON(fiber.Map{
		"id":          otp.ID,
		"mobile":      otp.Mobile,
		"is_verified": otp.IsVerified,
		"expires_at":  otp.ExpiresAt,
	})
}

type passwordResetRequestBody struct {
	Email string `json:"email"`
}

// PasswordResetRequest handles reset code generation
func (h *AuthHandler) PasswordResetRequest(c *fiber.Ctx) error {
	var body passwordResetRequestBody
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"email": "this field is required",
		})
	}

	rc, err := h.reset.Request(body.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to create reset code",
		})
	}

	resp := fiber.Map{
		"id":         rc.ID,
		"user":       rc.UserID,
		"created_at": rc.CreatedAt,
	}
	if h.echoCodes {
		resp["code"] = rc.Code
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

type passwordResetConfirmBody struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// PasswordResetConfirm handles the password change authorized by a reset code
func (h *AuthHandler) PasswordResetConfirm(c *fiber.Ctx) error {
	var body passwordResetConfirmBody
	if err := c.BodyParser(&body); err != nil || body.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "code and new_password are required",
		})
	}
	if len(body.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"new_password": "password must be at least 8 characters",
		})
	}

	if err := h.reset.Confirm(body.Code, body.NewPassword); err != nil {
		if errors.Is(err, services.ErrResetCodeInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "code invalid or expired",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to reset password",
		})
	}

	return c.JSON(fiber.Map{
		"detail": "password reset successful",
	})
}

type tokenBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token handles password login and returns the access/refresh pair
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var body tokenBody
	if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "email and password are required",
		})
	}

	pair, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationFailed) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "no active account found with the given credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to issue tokens",
		})
	}

	return c.JSON(pair)
}

type tokenRefreshBody struct {
	Refresh string `json:"refresh"`
}

// TokenRefresh mints a new access token from a valid refresh token
func (h *AuthHandler) TokenRefresh(c *fiber.Ctx) error {
	var body tokenRefreshBody
	if err := c.BodyParser(&body); err != nil || body.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"refresh": "this field is required",
		})
	}

	access, err := h.tokens.Refresh(body.Refresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "token is invalid or expired",
		})
	}

	return c.JSON(fiber.Map{
		"access": access,
	})
}
