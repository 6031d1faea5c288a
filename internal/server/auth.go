package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonhttp "github.com/sngm3741/ecorating-services/api/internal/interfaces/http/common"
)

type authClaims struct {
	jwt.RegisteredClaims
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	Picture           string `json:"picture,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、認証済みユーザーをコンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Authorization ヘッダーがありません")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "Bearer トークンを指定してください")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "アクセストークンが空です")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}

		user := commonhttp.AuthenticatedUser{
			ID:       claims.Subject,
			Email:    strings.TrimSpace(claims.Email),
			Name:     claims.Name,
			Username: claims.PreferredUsername,
			Picture:  claims.Picture,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly は ADMIN_EMAILS が設定されている場合にメールアドレスで管理者を絞り込む。
// 未設定なら認証済みユーザー全員を通す。
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.adminEmails) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		user, ok := commonhttp.UserFromContext(r.Context())
		if !ok {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "ログインが必要です")
			return
		}
		if _, allowed := s.adminEmails[strings.ToLower(user.Email)]; !allowed {
			s.logger.Warnw("admin access denied", "userId", user.ID)
			commonhttp.WriteError(s.logger, w, http.StatusForbidden, "管理者権限がありません")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseAuthToken は複数の JWT 設定を順番に試し、署名検証と Issuer/Audience の整合性を確認する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("認証設定が構成されていません")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}
		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !slices.Contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("アクセストークンが無効です")
}

func emailSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			set[email] = struct{}{}
		}
	}
	return set
}
