package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/samber/lo"

	"vlavem/adapters/database"
)

// ListTables 讀取 PostgREST 根路徑的 OpenAPI 文件，列出公開的資料表與檢視表。
// 服務通常只對 service role key 開放這個端點。
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	const op = "ListTables"
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/rest/v1/", "", nil, &raw); err != nil {
		return nil, database.WrapError(op, err)
	}
	var doc openapi2.T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, database.WrapError(op, err)
	}
	tables := lo.Keys(doc.Definitions)
	if len(tables) == 0 {
		// 部分版本只列出路徑
		tables = lo.FilterMap(lo.Keys(doc.Paths), func(path string, _ int) (string, bool) {
			name := strings.TrimPrefix(path, "/")
			return name, name != "" && !strings.HasPrefix(name, "rpc/")
		})
	}
	slices.Sort(tables)
	return tables, nil
}

// Version 透過 rpc 呼叫資料庫的 version 函數
func (c *Client) Version(ctx context.Context) (string, error) {
	const op = "Version"
	var version string
	if err := c.do(ctx, http.MethodPost, "/rest/v1/rpc/version", "", map[string]any{}, &version); err != nil {
		return "", database.WrapError(op, err)
	}
	return version, nil
}
