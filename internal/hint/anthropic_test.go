package hint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/pkg/anthropic"
)

type fakeClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeClient) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{Text: f.text}, nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.Record{
		{University: "FAST", Campus: "Islamabad", Department: "Computing", Program: "BS", Year: 2023, MinMerit: 80},
	})
}

func TestExtractHint_ParsesJSON(t *testing.T) {
	client := &fakeClient{text: `{"university":"FAST","campus":"Islamabad","department":"Computing","program":"BS","year":2023}`}
	p := NewAnthropicProvider(client, testCatalog(), "test-model", time.Second, 0)

	h, err := p.ExtractHint(context.Background(), "fast merit?")
	require.NoError(t, err)
	assert.Equal(t, "FAST", h.University.trimmed())
	assert.Equal(t, "2023", h.Year.trimmed())
}

func TestExtractHint_StripsSurroundingProse(t *testing.T) {
	client := &fakeClient{text: "Here is the extraction:\n{\"university\":\"FAST\"}\nHope that helps."}
	p := NewAnthropicProvider(client, testCatalog(), "test-model", time.Second, 0)

	h, err := p.ExtractHint(context.Background(), "fast merit?")
	require.NoError(t, err)
	assert.Equal(t, "FAST", h.University.trimmed())
}

func TestExtractHint_NoJSONInResponse(t *testing.T) {
	client := &fakeClient{text: "I cannot help with that."}
	p := NewAnthropicProvider(client, testCatalog(), "test-model", time.Second, 0)

	_, err := p.ExtractHint(context.Background(), "fast merit?")
	assert.Error(t, err)
}

func TestExtractHint_ClientError(t *testing.T) {
	client := &fakeClient{err: context.DeadlineExceeded}
	p := NewAnthropicProvider(client, testCatalog(), "test-model", time.Second, 0)

	_, err := p.ExtractHint(context.Background(), "fast merit?")
	assert.Error(t, err)
}

func TestExtractHint_RateLimited(t *testing.T) {
	client := &fakeClient{text: `{"university":"FAST"}`}
	p := NewAnthropicProvider(client, testCatalog(), "test-model", time.Second, 1)

	_, err := p.ExtractHint(context.Background(), "first")
	require.NoError(t, err)

	_, err = p.ExtractHint(context.Background(), "second")
	assert.Error(t, err, "the second call within the window exceeds the burst")
	assert.Equal(t, 1, client.calls)
}

func TestPrompt_EmbedsVocabulary(t *testing.T) {
	p := NewAnthropicProvider(&fakeClient{}, testCatalog(), "test-model", time.Second, 0)
	prompt := p.prompt("what is the merit?")
	assert.Contains(t, prompt, "FAST")
	assert.Contains(t, prompt, "Computing")
	assert.Contains(t, prompt, "what is the merit?")
}
