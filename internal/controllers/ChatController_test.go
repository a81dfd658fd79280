package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/chatbot"
	"nest/internal/emotion"
	"nest/internal/models"
	"nest/internal/repositories"
	"nest/internal/services"
	"nest/internal/testutil"
)

type echoCompleter struct{}

func (echoCompleter) Complete(_ context.Context, msgs []models.HistoryMessage) (string, error) {
	return "echo: " + msgs[len(msgs)-1].Content, nil
}

func newChatController() (*ChatController, *testutil.MemoryArchive) {
	logger := &testutil.MockLogger{}
	archive := &testutil.MemoryArchive{}
	svc := services.NewChatService(
		chatbot.NewBot(echoCompleter{}),
		emotion.NewLexiconAnalyzer(),
		&testutil.MemoryChatRepository{},
		repositories.NewMemoryHistoryCache(20),
		archive,
		logger,
	)
	return NewChatController(logger, svc), archive
}

func TestChatController_ChatAndEnd(t *testing.T) {
	cc, archive := newChatController()

	rr := serve("POST /chat", cc.Chat, http.MethodPost, "/chat", `{"user_id":1,"message":"hi there"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.ChatResponse](t, rr)
	assert.Equal(t, "echo: hi there", resp.Response)
	assert.Equal(t, int64(1), resp.SessionID)

	rr = serve("POST /chat/sessions/{id}/end", cc.EndSession, http.MethodPost, "/chat/sessions/1/end", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, archive.Transcripts, 1)

	rr = serve("POST /chat/sessions/{id}/end", cc.EndSession, http.MethodPost, "/chat/sessions/1/end", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestChatController_Validation(t *testing.T) {
	cc, _ := newChatController()

	rr := serve("POST /chat", cc.Chat, http.MethodPost, "/chat", `{"user_id":1,"message":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve("POST /chat/sessions/{id}/end", cc.EndSession, http.MethodPost, "/chat/sessions/abc/end", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve("POST /chat/sessions/{id}/end", cc.EndSession, http.MethodPost, "/chat/sessions/42/end", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
