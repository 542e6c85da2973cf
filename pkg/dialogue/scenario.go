package dialogue

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Scenario describes a telecom conversation category and its expected flow.
// The registry is loaded once at startup and never mutated.
type Scenario struct {
	Name            string
	Description     string
	Flow            string
	CommonIntents   []string
	TypicalDuration string
}

const (
	ScenarioBillingDispute    = "billing_dispute"
	ScenarioTechnicalSupport  = "technical_support"
	ScenarioPackageChange     = "package_change"
	ScenarioRoamingInquiry    = "roaming_inquiry"
	ScenarioAccountManagement = "account_management"
)

func DefaultScenarios() map[string]Scenario {
	return map[string]Scenario{
		ScenarioBillingDispute: {
			Name:            ScenarioBillingDispute,
			Description:     "Fatura itirazı ve ödeme sorunları",
			Flow:            "Müşteri fatura hatası bildiriyor → Ajan bilgi topluyor → Çözüm sunuyor",
			CommonIntents:   []string{IntentComplaint, IntentInfoRequest, IntentInfoProvide, IntentSolution},
			TypicalDuration: "8-12 turns",
		},
		ScenarioTechnicalSupport: {
			Name:            ScenarioTechnicalSupport,
			Description:     "İnternet ve teknik destek sorunları",
			Flow:            "Müşteri teknik sorun bildiriyor → Ajan troubleshooting → Çözüm/teknisyen",
			CommonIntents:   []string{IntentComplaint, IntentInfoRequest, IntentSolution, IntentConfirmation},
			TypicalDuration: "10-16 turns",
		},
		ScenarioPackageChange: {
			Name:            ScenarioPackageChange,
			Description:     "Paket değişikliği ve yükseltme talepleri",
			Flow:            "Müşteri paket değişikliği istiyor → Ajan seçenekleri sunuyor → Onay",
			CommonIntents:   []string{IntentInfoRequest, IntentOptions, IntentConfirmation},
			TypicalDuration: "6-10 turns",
		},
		ScenarioRoamingInquiry: {
			Name:            ScenarioRoamingInquiry,
			Description:     "Roaming ve yurtdışı kullanım sorguları",
			Flow:            "Müşteri roaming bilgisi istiyor → Ajan tarife/paket bilgisi → Aktivasyon",
			CommonIntents:   []string{IntentInfoRequest, IntentInfoProvide, IntentConfirmation},
			TypicalDuration: "6-8 turns",
		},
		ScenarioAccountManagement: {
			Name:            ScenarioAccountManagement,
			Description:     "Hesap yönetimi ve genel bilgi talepleri",
			Flow:            "Müşteri hesap bilgisi istiyor → Ajan bilgi sağlıyor → İşlem tamamlama",
			CommonIntents:   []string{IntentInfoRequest, IntentInfoProvide, IntentConfirmation},
			TypicalDuration: "6-10 turns",
		},
	}
}

func DefaultScenarioWeights() map[string]float64 {
	return map[string]float64{
		ScenarioBillingDispute:    0.25,
		ScenarioTechnicalSupport:  0.30,
		ScenarioPackageChange:     0.20,
		ScenarioRoamingInquiry:    0.15,
		ScenarioAccountManagement: 0.10,
	}
}

// ValidateScenarioWeights checks each weight is a fraction and the sum is
// 1.0 within a 0.01 tolerance. Reported once at startup, never per call.
func ValidateScenarioWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("scenario weights empty")
	}
	sum := 0.0
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("scenario weight %s out of range: %v", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("scenario weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// ScenarioSelector draws a per-run assignment of scenario labels.
type ScenarioSelector struct {
	weights map[string]float64
	labels  []string
	rng     *rand.Rand
}

func NewScenarioSelector(weights map[string]float64, rng *rand.Rand) (*ScenarioSelector, error) {
	if err := ValidateScenarioWeights(weights); err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(weights))
	for name := range weights {
		labels = append(labels, name)
	}
	// Sorted for reproducible draws under a seeded rng.
	sort.Strings(labels)
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ScenarioSelector{weights: weights, labels: labels, rng: rng}, nil
}

// Distribution returns exactly n labels: floor(n*weight) copies per label,
// any shortfall back-filled with uniform random draws, then shuffled.
func (s *ScenarioSelector) Distribution(n int) []string {
	out := make([]string, 0, n)
	for _, label := range s.labels {
		count := int(float64(n) * s.weights[label])
		for i := 0; i < count; i++ {
			out = append(out, label)
		}
	}
	for len(out) < n {
		out = append(out, s.labels[s.rng.Intn(len(s.labels))])
	}
	out = out[:n]
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
