package dialogue

import "fmt"

// Directive is the instruction handed to the prompt for the next turn,
// optionally pinning the intent the model is expected to produce.
type Directive struct {
	Text   string
	Intent string
}

// InstructionPolicy maps (role, scenario, last intent, turn position) to a
// directive. This table is the conversation state machine: turn one opens,
// the two final turns close, everything between is driven by the previous
// turn's intent within the active scenario.
type InstructionPolicy struct{}

func NewInstructionPolicy() *InstructionPolicy { return &InstructionPolicy{} }

// Instruct derives the next directive purely from its arguments; history
// carries all state. Unmatched cases fall through to a permissive
// "continue naturally" directive so generation can never deadlock.
func (p *InstructionPolicy) Instruct(role Role, scenario string, history []Turn, totalTurns, turnNumber int, agentName string) Directive {
	if turnNumber == 1 {
		return Directive{
			Text:   fmt.Sprintf("Sen %s adındaki ajansın. Sıcak bir selamlama yap ve nasıl yardımcı olabileceğini sor.", agentName),
			Intent: IntentGreeting,
		}
	}
	if turnNumber == totalTurns-1 {
		return Directive{
			Text:   "Sen ajansın. Sorunu çözdün, nazikçe görüşmeyi sonlandır.",
			Intent: IntentClosing,
		}
	}
	if turnNumber == totalTurns {
		return Directive{
			Text:   "Sen kullanıcısın. Ajana teşekkür et.",
			Intent: IntentThanks,
		}
	}

	lastIntent := ""
	if len(history) > 0 {
		lastIntent = history[len(history)-1].Intent
	}

	if role == RoleAgent {
		return p.agentDirective(scenario, lastIntent, turnNumber)
	}
	return p.userDirective(scenario, lastIntent)
}

func (p *InstructionPolicy) agentDirective(scenario, lastIntent string, turnNumber int) Directive {
	switch scenario {
	case ScenarioBillingDispute:
		if lastIntent == IntentComplaint {
			return Directive{Text: "Fatura detaylarını öğrenmek için bilgi iste.", Intent: IntentInfoRequest}
		}
		if lastIntent == IntentInfoProvide && turnNumber > 4 {
			return Directive{Text: "Soruna çözüm öner (iade, düzeltme vb.).", Intent: IntentSolution}
		}
	case ScenarioTechnicalSupport:
		if lastIntent == IntentComplaint {
			return Directive{Text: "Teknik detayları öğrenmek için soru sor.", Intent: IntentInfoRequest}
		}
		if lastIntent == IntentInfoProvide && turnNumber > 4 {
			return Directive{Text: "Teknik çözüm öner (reset, teknisyen vb.).", Intent: IntentSolution}
		}
	}

	switch lastIntent {
	case IntentComplaint, IntentInfoRequest:
		return Directive{Text: "Daha fazla bilgi toplamak için soru sor.", Intent: IntentInfoRequest}
	case IntentInfoProvide:
		return Directive{Text: "Bilgiyi işle ve uygun yanıt ver. Intent \"info_provide\" veya \"solution\" olabilir."}
	}
	return Directive{Text: "Görüşmeyi ilerletmek için uygun yanıt ver."}
}

func (p *InstructionPolicy) userDirective(scenario, lastIntent string) Directive {
	switch lastIntent {
	case IntentGreeting:
		if scenario == ScenarioBillingDispute || scenario == ScenarioTechnicalSupport {
			return Directive{Text: "Sorununuzu açıklayın.", Intent: IntentComplaint}
		}
		return Directive{Text: "Neye ihtiyacınız olduğunu belirtin.", Intent: IntentInfoRequest}
	case IntentInfoRequest:
		return Directive{Text: "İstenen bilgiyi sağlayın.", Intent: IntentInfoProvide}
	case IntentSolution, IntentOptions:
		return Directive{Text: "Önerilen çözümü kabul edin veya soru sorun. Intent \"confirmation\" veya \"info_request\" olabilir."}
	}
	return Directive{Text: "Doğal şekilde görüşmeye devam edin."}
}
