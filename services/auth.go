package services

import (
	"fmt"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// AuthService is deliberately thin: the engine never sees authentication,
// it only receives the user id the middleware resolved.
type AuthService struct {
	context.DefaultService

	sqlSvc *SqlService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid registration request")
	}

	if _, err := svc.sqlSvc.GetUserByEmailOrUsername(req.Email); err == nil {
		return nil, shared.NewConflictError(fmt.Errorf("email taken"), "Email is already registered")
	}
	if _, err := svc.sqlSvc.GetUserByEmailOrUsername(req.Username); err == nil {
		return nil, shared.NewConflictError(fmt.Errorf("username taken"), "Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.sqlSvc.CreateUser(&model.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
		Role:     shared.RoleUser,
	})
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	log.WithField("user_id", user.ID).Info("User registered")

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful",
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid login request")
	}

	user, err := svc.sqlSvc.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	if err := svc.sqlSvc.UpdateUserLastLogin(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User: dto.UserInfo{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get("Authorization"))
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(shared.UserID).(string)
		if !ok || userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		user, err := svc.sqlSvc.GetUserByID(userID)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}
		if user.Role != role {
			return shared.ResponseForbidden(c)
		}

		return c.Next()
	}
}
