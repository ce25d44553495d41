// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 目前只有主持人 token 驗證：議程的寫入操作必須帶有
// 對應會議的有效 token 才會放行。
package middleware
