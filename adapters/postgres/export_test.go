package postgres

// NewClientsWith 讓測試替換開啟連線的函數
var NewClientsWith = newClients
