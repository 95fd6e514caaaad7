package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"
)

// apiError 是 PostgREST 與 GoTrue 回傳的錯誤內容
type apiError struct {
	Code             any    `json:"code"`
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Details          string `json:"details"`
}

func (e apiError) text() string {
	return lo.FindOrElse([]string{e.Message, e.Msg, e.ErrorDescription, e.Error, e.Details}, "", func(s string) bool {
		return s != ""
	})
}

// do 對服務發送請求，bearer 為空時使用 client 的 key
func (c *Client) do(ctx context.Context, method, path, bearer string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("fail to marshal request body, err=%w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("fail to build request, err=%w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+lo.Ternary(bearer != "", bearer, c.key))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fail to read response body, err=%w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.text() != "" {
			return fmt.Errorf("%s (status %d)", apiErr.text(), resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("fail to decode response body, err=%w", err)
	}
	return nil
}
