package chat

import "echoeats/app/service/history"

type ChatResult struct {
	Reply        string `json:"reply"`
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

type HistoryEntry struct {
	Role    history.Role `json:"role"`
	Content string       `json:"content"`
}
