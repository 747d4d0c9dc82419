package hint

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/pkg/anthropic"
)

const hintSystemPrompt = `You extract structured admission-merit query fields from user questions about Pakistani university merit lists. Respond with ONLY a JSON object, no prose.`

// jsonBlockRe grabs the first {...} block so surrounding prose from the
// model does not break parsing.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// AnthropicProvider extracts hints via the Anthropic Messages API. Calls
// carry a bounded timeout and sit behind a rate limiter; both failures and
// over-limit turns report an error the engine downgrades to a log line.
type AnthropicProvider struct {
	client  anthropic.Client
	catalog *catalog.Catalog
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewAnthropicProvider builds a provider. requestsPerMinute bounds the call
// rate; zero disables limiting.
func NewAnthropicProvider(client anthropic.Client, cat *catalog.Catalog, model string, timeout time.Duration, requestsPerMinute int) *AnthropicProvider {
	p := &AnthropicProvider{
		client:  client,
		catalog: cat,
		model:   model,
		timeout: timeout,
	}
	if requestsPerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
	}
	return p
}

func (p *AnthropicProvider) ExtractHint(ctx context.Context, message string) (*Hint, error) {
	if p.limiter != nil && !p.limiter.Allow() {
		return nil, eris.New("hint: rate limit exceeded")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 256,
		System:    hintSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: p.prompt(message)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "hint: anthropic call")
	}

	block := jsonBlockRe.FindString(resp.Text)
	if block == "" {
		return nil, eris.New("hint: no JSON object in response")
	}

	var h Hint
	if err := json.Unmarshal([]byte(block), &h); err != nil {
		return nil, eris.Wrap(err, "hint: parse response")
	}
	return &h, nil
}

// prompt embeds the catalog vocabularies so the model canonicalizes against
// real values instead of inventing labels.
func (p *AnthropicProvider) prompt(message string) string {
	return fmt.Sprintf(`From the question, pull:
- university (one of: %s)
- campus (string; "" if none; multi-campus joined by comma or 'and')
- department (canonical to: %s)
- program (canonical to: %s, default "BS")
- year (int, default current year; 'last year' = current year minus 1)

Return ONLY JSON with keys: university, campus, department, program, year.
User said:
"""%s"""`,
		strings.Join(p.catalog.Universities(), ", "),
		strings.Join(p.catalog.Departments(), ", "),
		strings.Join(p.catalog.Programs(), ", "),
		message,
	)
}
