package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/simplesdental/go-auth/middleware/authware"
)

type AuthControllerRoutes struct {
	Login    string
	Register string
	Context  string
	Password string
}

// AuthController exposes the JSON auth surface: login, registration, the
// authenticated principal, and self-service password updates.
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Repo   RepositoryManager
	Routes *AuthControllerRoutes
	cfg    Config
}

func NewAuthController(auther Authenticator, repo RepositoryManager, cfg Config) *AuthController {
	return &AuthController{
		Auther: auther,
		Repo:   repo,
		cfg:    cfg,
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
			Context:  "/auth/context",
			Password: "/auth/password",
		},
	}
}

// RegisterRoutes mounts the auth endpoints. The request filter runs in front
// of every route; it never rejects by itself, so public endpoints stay public
// and the protected handlers check the context.
func (a *AuthController) RegisterRoutes(app *fiber.App) {
	filter := a.RequestFilter()

	app.Post(a.Routes.Login, a.LoginPost)
	app.Post(a.Routes.Register, a.RegistrationCreate)
	app.Get(a.Routes.Context, filter, a.ContextShow)
	app.Put(a.Routes.Password, filter, a.PasswordUpdate)
}

// RequestFilter builds the per-request authentication filter backed by the
// full validation pipeline.
func (a *AuthController) RequestFilter() fiber.Handler {
	return authware.New(authware.Config{
		ContextKey: a.cfg.GetContextKey(),
		AuthScheme: a.cfg.GetAuthScheme(),
		Validate: func(ctx context.Context, token string) (authware.Identity, error) {
			identity, err := a.Auther.Validate(ctx, token)
			if err != nil {
				return nil, err
			}
			return identity, nil
		},
		ContextEnricher: func(ctx context.Context, identity authware.Identity) context.Context {
			return WithSubjectContext(ctx, identity.Email())
		},
	})
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will validate the payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the token plus the principal's public fields.
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return a.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse login payload"))
	}

	if err := payload.Validate(); err != nil {
		return a.renderError(c, errors.Wrap(err, errors.CategoryValidation, "invalid login payload"))
	}

	token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	user, err := a.Repo.Users().GetByEmail(c.UserContext(), payload.Email)
	if err != nil {
		return a.renderError(c, WrapStoreUnavailable(err))
	}

	resp := LoginResponse{
		Token: token,
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  string(user.Role),
	}

	if a.Debug {
		a.Logger.Debug("login response", "body", print.MaybePrettyJSON(resp))
	}

	return c.JSON(resp)
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return a.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse registration payload"))
	}

	var created *User
	payload.OnResponse = func(user *User) {
		created = user
	}

	handler := NewRegisterUserHandler(a.Repo)
	if err := handler.Execute(c.UserContext(), *payload); err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (a *AuthController) ContextShow(c *fiber.Ctx) error {
	subject, ok := SubjectFromContext(c.UserContext())
	if !ok {
		return a.renderError(c, ErrNoAuthenticatedContext)
	}

	user, err := a.Repo.Users().GetByEmail(c.UserContext(), subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return a.renderError(c, ErrIdentityNotFound)
		}
		return a.renderError(c, WrapStoreUnavailable(err))
	}

	return c.JSON(user)
}

func (a *AuthController) PasswordUpdate(c *fiber.Ctx) error {
	payload := new(UpdatePasswordMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("password update parse payload", "error", err)
		return a.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse password payload"))
	}

	handler := NewUpdatePasswordHandler(a.Repo, a.Auther)
	if err := handler.Execute(c.UserContext(), *payload); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred")
	}

	if a.Debug {
		a.Logger.Debug("request error",
			"message", richErr.Message,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)
	}

	return c.Status(statusFromError(richErr)).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		},
	})
}

func statusFromError(richErr *errors.Error) int {
	if IsStoreUnavailable(richErr) {
		return fiber.StatusServiceUnavailable
	}

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		if richErr.Code > 0 {
			return richErr.Code
		}
		return fiber.StatusInternalServerError
	}
}
