package models

// 資料庫中的資料表名稱
const (
	TableAuctions   = "auctions"
	TableCategories = "categories"
	TableClients    = "clients"
	TableLots       = "lots"
)

// BusinessTables 列出後台管理的所有資料表
var BusinessTables = []string{TableAuctions, TableCategories, TableClients, TableLots}
