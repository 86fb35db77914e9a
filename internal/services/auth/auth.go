package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Insert(ctx context.Context, email, username string, passwordHash []byte, role models.Role) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RevocationStore remembers revoked token IDs until the tokens would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type Claims struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	revocations  RevocationStore
	mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	tokenTTL     time.Duration
}

func New(
	log *slog.Logger,
	storage UsersStorage,
	revocations RevocationStore,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		revocations:  revocations,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

func (a *AuthService) register(ctx context.Context, email, username, password string, role models.Role) (*models.User, error) {
	const op = "auth.AuthService.register"
	log := a.log.With("op", op, "email", email, "username", username, "role", role)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	user, err := a.storage.Insert(ctx, email, username, hash, role)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email or username already taken")
			return nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	if a.mailer != nil {
		a.taskExecutor.Add(func() {
			if err := a.mailer.Send(user.Email, "user_welcome.tmpl", map[string]any{
				"username": user.Username,
			}); err != nil {
				a.log.Error("Error sending welcome email", "errMsg", err.Error())
			}
		})
	}
	return user, nil
}

// Register creates a regular account. The role is always user; elevated
// roles only come through RegisterElevated.
func (a *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	return a.register(ctx, email, username, password, models.RoleUser)
}

// RegisterElevated creates a moderator or admin account. The caller's role
// is enforced by the route guard; this only validates the requested role.
func (a *AuthService) RegisterElevated(ctx context.Context, email, username, password string, role models.Role) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleModerator {
		return nil, ErrInvalidRole
	}
	return a.register(ctx, email, username, password, role)
}

// Login checks the credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return "", ErrInvalidCredentials
	}
	return a.issueToken(user)
}

func (a *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:      user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseToken validates the signature, expiry and revocation state, and
// returns the token's claims.
func (a *AuthService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the presented token for the rest of its lifetime. Revoking
// an already revoked token is a no-op.
func (a *AuthService) Logout(ctx context.Context, tokenString string) error {
	const op = "auth.AuthService.Logout"
	claims, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := a.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		a.log.With("op", op).Error(err.Error())
		return err
	}
	return nil
}
