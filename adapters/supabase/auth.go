package supabase

import (
	"context"
	"net/http"

	"vlavem/adapters/database"
)

type accessTokenKey struct{}

// WithAccessToken 將使用者的 access token 放入 context，
// 只有啟用 session 的 Client 會使用它。
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext 從 context 取得使用者的 access token
func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// CurrentUser 透過 auth 端點取得目前 session 的使用者。
// 沒有 session(或 Client 不使用 session)時回傳 nil, nil。
func (c *Client) CurrentUser(ctx context.Context) (*database.User, error) {
	const op = "CurrentUser"
	if !c.options.persistSession {
		return nil, nil
	}
	token := AccessTokenFromContext(ctx)
	if token == "" {
		return nil, nil
	}
	var user database.User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		return nil, database.WrapError(op, err)
	}
	return &user, nil
}
