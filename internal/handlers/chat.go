package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/studysarthi/studysarthi-backend/internal/services"
)

type ChatHandler struct {
  chatService   services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) ListSessions(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  sessions, err := ch.chatService.ListSessions(c.Request.Context(), userID, c.Query("class"), c.Query("board"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"sessions": sessions})
}

type saveSessionsRequest struct {
  ClassValue  string                `json:"class"`
  Board       string                `json:"board"`
  Sessions    []chatSessionPayload  `json:"sessions"`
}

type chatSessionPayload struct {
  ID            string      `json:"id"`
  Title         string      `json:"title"`
  LastMessage   string      `json:"lastMessage"`
  MessageCount  int         `json:"messageCount"`
  Timestamp     time.Time   `json:"timestamp"`
}

func (ch *ChatHandler) SaveSessions(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req saveSessionsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  sessions := make([]services.ChatSessionInput, 0, len(req.Sessions))
  for _, s := range req.Sessions {
    sessions = append(sessions, services.ChatSessionInput{
      ID:           s.ID,
      Title:        s.Title,
      LastMessage:  s.LastMessage,
      MessageCount: s.MessageCount,
      Timestamp:    s.Timestamp,
    })
  }
  if err := ch.chatService.SaveSessions(c.Request.Context(), userID, req.ClassValue, req.Board, sessions); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Sessions saved successfully"})
}

func (ch *ChatHandler) DeleteSession(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  if err := ch.chatService.DeleteSession(c.Request.Context(), userID, c.Param("id")); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Session deleted successfully"})
}

func (ch *ChatHandler) ListMessages(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  messages, err := ch.chatService.ListMessages(c.Request.Context(), userID, c.Param("id"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"messages": messages})
}

type saveMessagesRequest struct {
  Messages    []chatMessagePayload  `json:"messages"`
}

type chatMessagePayload struct {
  Role        string      `json:"role"`
  Content     string      `json:"content"`
  ImageURL    *string     `json:"imageUrl"`
  Timestamp   time.Time   `json:"timestamp"`
}

func (ch *ChatHandler) SaveMessages(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req saveMessagesRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  messages := make([]services.ChatMessageInput, 0, len(req.Messages))
  for _, m := range req.Messages {
    messages = append(messages, services.ChatMessageInput{
      Role:      m.Role,
      Content:   m.Content,
      ImageURL:  m.ImageURL,
      Timestamp: m.Timestamp,
    })
  }
  if err := ch.chatService.SaveMessages(c.Request.Context(), userID, c.Param("id"), messages); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Messages saved successfully"})
}
