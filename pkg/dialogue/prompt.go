package dialogue

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
)

// historyWindow is how many prior turns the model sees. The rolling window
// keeps prompts bounded on long conversations.
const historyWindow = 3

// TurnContext carries everything the renderer needs for one turn's prompt.
type TurnContext struct {
	ConversationID int
	AgentName      string
	Scenario       Scenario
	Role           Role
	TurnNumber     int
	TotalTurns     int
	SpeakerID      string
	History        []Turn
	Directive      Directive
}

// PromptRenderer builds the Turkish single-turn generation prompt. The exact
// wording is a collaborator concern; the renderer only guarantees which
// inputs reach the model.
type PromptRenderer struct {
	minChars int
	maxChars int
	rng      *rand.Rand
}

func NewPromptRenderer(minChars, maxChars int, rng *rand.Rand) *PromptRenderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &PromptRenderer{minChars: minChars, maxChars: maxChars, rng: rng}
}

func (r *PromptRenderer) Render(ctx TurnContext) string {
	directive := ctx.Directive.Text
	if ctx.Directive.Intent != "" {
		directive = fmt.Sprintf("%s Intent: %q", directive, ctx.Directive.Intent)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sen %s adında Türk telekom şirketinde çalışan bir müşteri hizmetleri temsilcisisin. Gerçekçi bir telefon görüşmesi için tek bir konuşma turu oluşturuyorsun.\n\n", ctx.AgentName)

	b.WriteString("# ZORUNLU ÇIKTI FORMATI\n")
	b.WriteString("Sadece aşağıdaki JSON formatında yanıt ver, başka hiçbir açıklama yapma:\n\n")
	fmt.Fprintf(&b, "{\n    \"conversation_id\": %d,\n    \"audio_filepath\": \"ses_dosyasi_yolu\",\n    \"transcript\": \"konuşma_metni\",\n    \"speaker_id\": \"konuşmacı_kimliği\",\n    \"role\": \"agent_veya_user\",\n    \"intent\": \"niyet_etiketi\",\n    \"slot\": {\"anahtar\": \"değer\"}\n}\n\n", ctx.ConversationID)

	b.WriteString("# SENARYO BİLGİLERİ\n")
	fmt.Fprintf(&b, "- **Senaryo**: %s - %s\n", ctx.Scenario.Name, ctx.Scenario.Description)
	fmt.Fprintf(&b, "- **Akış**: %s\n", ctx.Scenario.Flow)
	fmt.Fprintf(&b, "- **Görüşme ID**: %d\n", ctx.ConversationID)
	fmt.Fprintf(&b, "- **Tur**: %d/%d\n\n", ctx.TurnNumber, ctx.TotalTurns)

	b.WriteString("# KONUŞMA GEÇMİŞİ\n")
	b.WriteString(r.historyLines(ctx.History))
	b.WriteString("\n\n# BU TUR İÇİN TALİMATLAR\n")
	fmt.Fprintf(&b, "- **Rolün**: %s\n", ctx.Role)
	fmt.Fprintf(&b, "- **Görevin**: %s\n\n", directive)

	b.WriteString("# TÜRKÇE DİL KURALLARI\n")
	b.WriteString("- Doğal, günlük Türkçe kullan\n")
	b.WriteString("- Telekom terminolojisini doğru kullan\n")
	fmt.Fprintf(&b, "- Gerektiğinde dolgu kelimeler ekle: %s\n", strings.Join(r.sampleFillers(3), ", "))
	fmt.Fprintf(&b, "- Konuşma metni %d-%d karakter arası olmalı\n", r.minChars, r.maxChars)
	b.WriteString("- Ses dosyası için uygun, akıcı konuşma\n\n")

	b.WriteString("# NİYET VE SLOT KURALLARI\n")
	b.WriteString("- **info_request**: slot = {\"requested\": \"istenen_bilgi\"}\n")
	b.WriteString("- **info_provide**: slot = {\"sağlanan_bilgi\": \"değer\"}\n")
	b.WriteString("- **solution**: slot = {\"solution_type\": \"çözüm_türü\", \"details\": \"detaylar\"}\n")
	b.WriteString("- **Diğer niyetler**: slot = {}\n\n")

	b.WriteString("# SES DOSYASI KURALLARI\n")
	b.WriteString("- audio_filepath: Gerçekçi dosya yolu oluştur\n")
	fmt.Fprintf(&b, "- speaker_id: %s kullan\n", ctx.SpeakerID)
	fmt.Fprintf(&b, "- role: %q olmalı\n\n", ctx.Role)

	b.WriteString("JSON YANITI:")
	return b.String()
}

func (r *PromptRenderer) historyLines(history []Turn) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		raw, err := json.Marshal(t)
		if err != nil {
			continue
		}
		lines = append(lines, string(raw))
	}
	return strings.Join(lines, "\n")
}

func (r *PromptRenderer) sampleFillers(n int) []string {
	fillers := TurkishFillers()
	picks := r.rng.Perm(len(fillers))[:n]
	out := make([]string, n)
	for i, p := range picks {
		out[i] = fillers[p]
	}
	return out
}
