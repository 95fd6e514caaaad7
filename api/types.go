package api

import "vlavem/models"

// ErrorResponse 是所有錯誤回應的格式
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ListAuctionsResponse 是 GET /api/auctions 的回應
type ListAuctionsResponse struct {
	Success bool             `json:"success"`
	Data    []models.Auction `json:"data"`
	Count   int              `json:"count"`
}

// CreateAuctionRequest 是 POST /api/auctions 的請求內容
type CreateAuctionRequest struct {
	Name        string               `json:"name"`
	Location    string               `json:"location"`
	AuctionDate string               `json:"auction_date"`
	Description *string              `json:"description"`
	Status      models.AuctionStatus `json:"status"`
}

// CreateAuctionResponse 是 POST /api/auctions 的回應
type CreateAuctionResponse struct {
	Success bool            `json:"success"`
	Data    *models.Auction `json:"data"`
}

// DiagnosticsFailureResponse 是診斷本身無法完成時的回應
type DiagnosticsFailureResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}
