package services

import (
	"context"
	"fmt"
	"time"

	"nest/internal/chatbot"
	"nest/internal/emotion"
	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/repositories"
)

type ChatServiceInterface interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	EndSession(ctx context.Context, sessionID int64) (*models.EndChatResponse, error)
}

type ChatService struct {
	bot      chatbot.BotInterface
	analyzer emotion.Analyzer
	repo     repositories.ChatRepositoryInterface
	history  repositories.HistoryCacheInterface
	archive  repositories.TranscriptArchiveInterface
	logger   providers.Logger
	now      func() time.Time
}

func NewChatService(
	bot chatbot.BotInterface,
	analyzer emotion.Analyzer,
	repo repositories.ChatRepositoryInterface,
	history repositories.HistoryCacheInterface,
	archive repositories.TranscriptArchiveInterface,
	logger providers.Logger,
) *ChatService {
	return &ChatService{
		bot:      bot,
		analyzer: analyzer,
		repo:     repo,
		history:  history,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ChatService) openSession(ctx context.Context, userID, sessionID int64) (*models.ChatSession, error) {
	if sessionID == 0 {
		return s.repo.CreateSession(ctx, userID)
	}
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("chat session %d: %w", sessionID, models.ErrNotFound)
	}
	if session.EndTime != nil {
		return nil, fmt.Errorf("chat session %d has ended: %w", sessionID, models.ErrConflict)
	}
	return session, nil
}

// Chat runs one turn. History defaults to the cached recent turns of the
// session when the request carries none.
func (s *ChatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	session, err := s.openSession(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.AnalyzeText(ctx, req.Message)
	if err != nil {
		s.logger.Warnf(providers.TypePost, "Emotion analysis for chat session %d failed: %v", session.ID, err)
		analysis = nil
	}
	if err := s.repo.AddMessage(ctx, &models.ChatMessage{
		SessionID:       session.ID,
		Timestamp:       s.now().UTC(),
		Content:         req.Message,
		SenderType:      models.SenderUser,
		EmotionAnalysis: analysis,
	}); err != nil {
		return nil, err
	}

	history := req.History
	if history == nil {
		history, err = s.history.Recent(ctx, session.ID)
		if err != nil {
			s.logger.Warnf(providers.TypePost, "Chat history unavailable for session %d: %v", session.ID, err)
			history = nil
		}
	}

	reply, err := s.bot.Generate(ctx, req.Message, history, req.EmotionContext)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddMessage(ctx, &models.ChatMessage{
		SessionID:  session.ID,
		Timestamp:  s.now().UTC(),
		Content:    reply.Response,
		SenderType: models.SenderAI,
	}); err != nil {
		return nil, err
	}

	if err := s.history.Append(ctx, session.ID,
		models.HistoryMessage{Role: models.RoleUser, Content: req.Message},
		models.HistoryMessage{Role: models.RoleAssistant, Content: reply.Response},
	); err != nil {
		s.logger.Warnf(providers.TypePost, "Chat history not updated for session %d: %v", session.ID, err)
	}

	return &models.ChatResponse{SessionID: session.ID, ChatReply: *reply}, nil
}

func toHistory(msgs []*models.ChatMessage) []models.HistoryMessage {
	out := make([]models.HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		role := models.RoleUser
		if m.SenderType == models.SenderAI {
			role = models.RoleAssistant
		}
		out = append(out, models.HistoryMessage{Role: role, Content: m.Content})
	}
	return out
}

// EndSession summarises and archives the transcript, then stamps the end time.
func (s *ChatService) EndSession(ctx context.Context, sessionID int64) (*models.EndChatResponse, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndTime != nil {
		return nil, fmt.Errorf("chat session %d has ended: %w", sessionID, models.ErrConflict)
	}

	msgs, err := s.repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	transcript := toHistory(msgs)
	summary := s.bot.Summarize(transcript)
	end := s.now().UTC()

	if err := s.archive.Archive(ctx, &models.ChatTranscript{
		SessionID:  sessionID,
		UserID:     session.UserID,
		Messages:   transcript,
		Summary:    summary,
		StartedAt:  session.StartTime,
		EndedAt:    end,
		ArchivedAt: end,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.EndSession(ctx, sessionID, end); err != nil {
		return nil, err
	}
	if err := s.history.Drop(ctx, sessionID); err != nil {
		s.logger.Warnf(providers.TypePost, "Chat history for session %d not dropped: %v", sessionID, err)
	}

	return &models.EndChatResponse{SessionID: sessionID, EndTime: end, Summary: summary}, nil
}
