package diagnostics

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"
)

const (
	MessageAllPassed   = "🎉 All Supabase tests passed!"
	MessageSomeFailed  = "⚠️ Some tests failed"
	MessageRunFailed   = "❌ Server-side test failed"
	presenceSetText    = "✅ Set"
	presenceMissedText = "❌ Missing"
)

// Presence 代表某個設定值是否存在
type Presence bool

func (p Presence) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p Presence) String() string {
	return lo.Ternary(bool(p), presenceSetText, presenceMissedText)
}

// EnvironmentStatus 是必要設定值的檢查結果
type EnvironmentStatus struct {
	URL        Presence `json:"url"`
	AnonKey    Presence `json:"anonKey"`
	ServiceKey Presence `json:"serviceKey"`
}

// OK 判斷所有必要設定值是否都存在
func (e EnvironmentStatus) OK() bool {
	return bool(e.URL && e.AnonKey && e.ServiceKey)
}

// Missing 列出缺少的環境變數名稱
func (e EnvironmentStatus) Missing() []string {
	var missing []string
	if !e.URL {
		missing = append(missing, EnvURL)
	}
	if !e.AnonKey {
		missing = append(missing, EnvAnonKey)
	}
	if !e.ServiceKey {
		missing = append(missing, EnvServiceKey)
	}
	return missing
}

// Checks 是固定的連線檢查項目
type Checks struct {
	ClientInitialization bool `json:"clientInitialization"`
	DatabaseConnection   bool `json:"databaseConnection"`
	AdminConnection      bool `json:"adminConnection"`
	Authentication       bool `json:"authentication"`
}

// AllPassed 判斷所有檢查是否都通過
func (c Checks) AllPassed() bool {
	return c.ClientInitialization && c.DatabaseConnection && c.AdminConnection && c.Authentication
}

// ExtendedChecks 是頁面版診斷額外執行的檢查
type ExtendedChecks struct {
	// Tables 記錄每個業務資料表的查詢結果
	Tables map[string]bool `json:"tables"`
	// Introspection 記錄是否能列出資料表
	Introspection bool `json:"introspection"`
	// MissingTables 是 introspection 結果中缺少的預期資料表
	MissingTables []string `json:"missingTables"`
	// Version 是資料庫版本，僅供參考
	Version string `json:"version,omitempty"`
}

// AllPassed 判斷額外檢查是否都通過
func (c ExtendedChecks) AllPassed() bool {
	return c.Introspection && lo.EveryBy(lo.Values(c.Tables), func(ok bool) bool { return ok })
}

// Report 是一次診斷的結果，只存在於記憶體中
type Report struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment EnvironmentStatus `json:"environment"`
	Tests       Checks            `json:"tests"`
	Extended    *ExtendedChecks   `json:"extended,omitempty"`
	Errors      []string          `json:"errors"`

	// Logs 是診斷過程中依序收集的訊息
	Logs []string `json:"-"`
}

// EnvironmentOK 判斷環境檢查是否通過
func (r Report) EnvironmentOK() bool {
	return r.Environment.OK()
}

func (r *Report) finalize() {
	passed := r.Environment.OK() && r.Tests.AllPassed()
	if r.Extended != nil {
		passed = passed && r.Extended.AllPassed()
	}
	r.Success = passed
	r.Message = lo.Ternary(passed, MessageAllPassed, MessageSomeFailed)
}
