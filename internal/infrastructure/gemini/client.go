package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
)

// DefaultModel GEMINI_MODEL berilmasa
const DefaultModel = "gemini-2.0-flash"

const baristaInstruction = `Sen DEEP Premium Coffee'nin baristasısın. Müşterilerle Türkçe, samimi ve kısa konuşursun.

KURALLAR:
1. SADECE sana gönderilen menüdeki ürünleri öner. Menüde olmayan ürün uydurma.
2. Ürün adını ve fiyatını menüde yazdığı gibi kullan (örn. "Cappuccino - 45₺").
3. Menüde olmayan bir ürün sorulursa "Maalesef şu an menümüzde yok" de ve benzer bir ürün öner.
4. Malzeme veya hazırlanma süresi sorulursa menüdeki bilgiyi kullan. Bilgi yoksa bilmediğini söyle.
5. Selamlaşmalara kısa karşılık ver, her mesajda ürün listeleme.
6. Sipariş alamazsın. Sipariş için kasaya yönlendir.`

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewGeminiClient yangi Gemini barista client yaratish
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (repository.AIRepository, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)

	// Menyudan chetga chiqmasligi uchun past temperatura
	model.SetTemperature(0.4)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(baristaInstruction)},
	}

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond, // minimal interval
	}, nil
}

// Answer menyu konteksti va tarix bilan javob
func (g *geminiClient) Answer(ctx context.Context, menuContext, question string, history []entity.Turn) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, buildParts(menuContext, question, history)...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// buildParts menyu, oldingi suhbat va savolni yig'ish
func buildParts(menuContext, question string, history []entity.Turn) []genai.Part {
	parts := []genai.Part{genai.Text(menuContext)}

	for _, turn := range history {
		if turn.Question != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Müşteri: %s", turn.Question)))
		}
		if turn.Answer != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Barista: %s", turn.Answer)))
		}
	}

	parts = append(parts, genai.Text(fmt.Sprintf("Müşteri: %s", question)))
	return parts
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					result.WriteString(string(text))
				}
			}
		}
	}
	return result.String()
}

func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Navbatdagi slot lock ostida band qilinadi, kutish lock dan tashqarida
	g.mu.Lock()
	next := time.Now()
	if !g.last.IsZero() {
		if slot := g.last.Add(g.delay); slot.After(next) {
			next = slot
		}
	}
	g.last = next
	g.mu.Unlock()

	if wait := time.Until(next); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			<-g.sem
			return nil, ctx.Err()
		}
	}

	return func() {
		<-g.sem
	}, nil
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
