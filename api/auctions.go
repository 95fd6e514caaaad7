package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"vlavem/models"
)

const (
	MessageFetchAuctionsFailed = "Failed to fetch auctions"
	MessageCreateAuctionFailed = "Failed to create auction"
)

// GetAuctions 依建立時間由新到舊列出所有拍賣
func (impl *ServerImpl) GetAuctions(c *gin.Context) {
	const op = "GetAuctions"
	status, body := Handle(op, func() (int, any, error) {
		auctions, err := impl.public.ListAuctions(c.Request.Context())
		if err != nil {
			return 0, nil, err
		}
		if auctions == nil {
			auctions = []models.Auction{}
		}
		return http.StatusOK, ListAuctionsResponse{
			Success: true,
			Data:    auctions,
			Count:   len(auctions),
		}, nil
	}, QueryErrorMapper(MessageFetchAuctionsFailed))
	c.JSON(status, body)
}

// PostAuctions 新增一筆拍賣，未指定狀態時使用 in_bewerking
func (impl *ServerImpl) PostAuctions(c *gin.Context) {
	const op = "PostAuctions"
	status, body := Handle(op, func() (int, any, error) {
		var req CreateAuctionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return 0, nil, fmt.Errorf("[%s] Fail to parse request body, err=%w", op, err)
		}

		// 描述可能包含 HTML，寫入前先過濾
		description := req.Description
		if description != nil {
			description = lo.ToPtr(impl.htmlChecker.Sanitize(*description))
		}

		auction, err := impl.public.CreateAuction(c.Request.Context(), models.NewAuction{
			Name:        req.Name,
			Location:    req.Location,
			AuctionDate: req.AuctionDate,
			Description: description,
			Status:      lo.Ternary(req.Status != "", req.Status, models.AuctionStatusInProgress),
		})
		if err != nil {
			return 0, nil, err
		}
		impl.logger.Info("Auction created", slog.String("name", auction.Name))
		return http.StatusCreated, CreateAuctionResponse{
			Success: true,
			Data:    auction,
		}, nil
	}, QueryErrorMapper(MessageCreateAuctionFailed))
	c.JSON(status, body)
}
