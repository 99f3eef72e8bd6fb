package models

import "encoding/json"

// ExtractRequest 提取请求, url 与 urls 保留原始 JSON 以便区分缺失和类型错误
type ExtractRequest struct {
	URL  json.RawMessage `json:"url"`
	URLs json.RawMessage `json:"urls"`
}

// BatchResponse 批量提取响应
type BatchResponse struct {
	Results []VideoMetadata `json:"results"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
