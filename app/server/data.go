package server

import "echoeats/app/service/chat"

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Reply        string `json:"reply"`
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

type chatHistoryResponse struct {
	SessionID string              `json:"session_id"`
	History   []chat.HistoryEntry `json:"history"`
}

type voiceChatResponse struct {
	Reply string `json:"reply"`
	// Base64 encoded MP3, empty when synthesis failed
	Audio        string `json:"audio"`
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

type speechToTextResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

type healthResponse struct {
	Status string `json:"status"`
}
