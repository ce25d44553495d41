// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了所有的 HTTP 處理器（handlers）。
// 它負責將 HTTP 請求轉換為服務層的調用，把服務層的結果與錯誤
// 轉換回對應的 HTTP 響應，本身不含任何會議狀態邏輯。
package api
