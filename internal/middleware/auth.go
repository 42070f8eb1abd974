package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookieName = "auth_token"
	tokenTTL       = 24 * time.Hour
)

type contextKey string

const userIDKey contextKey = "user_id"

// claims — полезная нагрузка JWT с идентификатором сотрудника.
type claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// SetLoginCookie выписывает JWT и кладёт его в HttpOnly-cookie auth_token.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// WithAuth разбирает cookie auth_token и кладёт user_id в контекст запроса.
// Запросы без валидного токена проходят дальше анонимно — авторизацию
// принудительно проверяют сами хендлеры.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			var c claims
			token, err := jwt.ParseWithClaims(cookie.Value, &c, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, c.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext достаёт идентификатор сотрудника, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
