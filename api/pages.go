package api

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"vlavem/diagnostics"
	"vlavem/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const DEFAULT_DASHBOARD_URL = "https://supabase.com/dashboard"

var templateFuncs = template.FuncMap{
	"statusClass": func(status models.AuctionStatus) string {
		switch status {
		case models.AuctionStatusActive:
			return "badge-active"
		case models.AuctionStatusCompleted:
			return "badge-completed"
		default:
			return "badge-pending"
		}
	},
	"deref": func(s *string) string {
		return lo.FromPtr(s)
	},
	"join": strings.Join,
}

type dashboardView struct {
	Error          string
	Auctions       []models.Auction
	Categories     []models.Category
	ActiveAuctions int
	DashboardURL   string
}

type testConnectionView struct {
	Report diagnostics.Report
	Tables []string
	Stream bool
}

// GetDashboard 依序讀取拍賣與分類，任一查詢失敗時顯示錯誤頁面
func (impl *ServerImpl) GetDashboard(c *gin.Context) {
	const op = "GetDashboard"
	view := dashboardView{
		DashboardURL: lo.Ternary(impl.config.Dashboard.ProjectURL != "", impl.config.Dashboard.ProjectURL, DEFAULT_DASHBOARD_URL),
	}

	ctx := c.Request.Context()
	auctions, err := impl.public.ListAuctions(ctx)
	if err != nil {
		impl.renderDashboardError(c, op, view, err)
		return
	}
	categories, err := impl.public.ListActiveCategories(ctx)
	if err != nil {
		impl.renderDashboardError(c, op, view, err)
		return
	}

	view.Auctions = auctions
	view.Categories = categories
	view.ActiveAuctions = len(lo.Filter(auctions, func(a models.Auction, _ int) bool {
		return !a.IsCompleted()
	}))
	c.HTML(http.StatusOK, "dashboard.html", view)
}

func (impl *ServerImpl) renderDashboardError(c *gin.Context, op string, view dashboardView, err error) {
	impl.logger.Error("Fail to load dashboard data", slog.String("op", op), slog.Any("error", err))
	view.Error = err.Error()
	c.HTML(http.StatusOK, "dashboard.html", view)
}

// GetTestConnection 執行頁面版診斷後顯示結果。
// 帶 live 參數時只顯示頁面，診斷訊息由 /test-connection/stream 即時送出。
func (impl *ServerImpl) GetTestConnection(c *gin.Context) {
	if c.Query("live") != "" {
		c.HTML(http.StatusOK, "test_connection.html", testConnectionView{Stream: true})
		return
	}
	logs := impl.diagnostics.NewLogCollector()
	defer logs.Close()
	report := impl.diagnostics.RunExtended(c.Request.Context(), logs)
	c.HTML(http.StatusOK, "test_connection.html", testConnectionView{
		Report: report,
		Tables: sortedTables(report),
	})
}

// GetTestConnectionStream 以 SSE 即時送出診斷訊息，最後送出 result 事件
func (impl *ServerImpl) GetTestConnectionStream(c *gin.Context) {
	const op = "GetTestConnectionStream"
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	logs := impl.diagnostics.NewLogCollector()
	lines, unsubscribe := logs.Subscribe()
	defer unsubscribe()

	result := make(chan diagnostics.Report, 1)
	go func() {
		defer logs.Close()
		result <- impl.diagnostics.RunExtended(ctx, logs)
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			impl.logger.Debug("Client gone before diagnostics finished", slog.String("op", op))
			return false
		case line, ok := <-lines:
			if ok {
				c.SSEvent("log", line)
				return true
			}
			// 訊息送完後才送出結果
			c.SSEvent("result", <-result)
			return false
		}
	})
}

func sortedTables(report diagnostics.Report) []string {
	if report.Extended == nil {
		return nil
	}
	tables := lo.Keys(report.Extended.Tables)
	slices.Sort(tables)
	return tables
}
