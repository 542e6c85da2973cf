package dialogue

import "testing"

func TestExtractTurnFencedBlock(t *testing.T) {
	raw := "İşte yanıt:\n```json\n{\"transcript\": \"Merhaba, nasıl yardımcı olabilirim?\", \"intent\": \"greeting\", \"slot\": {}}\n```\n"
	res := ExtractTurn(raw)
	if res.Status != ParseOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if res.Turn.Transcript != "Merhaba, nasıl yardımcı olabilirim?" {
		t.Fatalf("transcript = %q", res.Turn.Transcript)
	}
	if res.Turn.Intent != "greeting" {
		t.Fatalf("intent = %q", res.Turn.Intent)
	}
}

func TestExtractTurnBareObject(t *testing.T) {
	raw := `{"transcript": "Faturamda sorun var.", "intent": "complaint", "slot": {"konu": "fatura"}}`
	res := ExtractTurn(raw)
	if res.Status != ParseOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if res.Turn.Slot["konu"] != "fatura" {
		t.Fatalf("slot = %v", res.Turn.Slot)
	}
}

func TestExtractTurnObjectInsideProse(t *testing.T) {
	raw := `Tabii, JSON formatında: {"transcript": "Hattınız {aktif} görünüyor.", "intent": "info_provide"} umarım yardımcı olur.`
	res := ExtractTurn(raw)
	if res.Status != ParseOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	// braces inside the string value must not end the scan early
	if res.Turn.Transcript != "Hattınız {aktif} görünüyor." {
		t.Fatalf("transcript = %q", res.Turn.Transcript)
	}
}

func TestExtractTurnNoObject(t *testing.T) {
	if res := ExtractTurn("üzgünüm, yanıt veremiyorum"); res.Status != ParseNoMatch {
		t.Fatalf("status = %s, want no_match", res.Status)
	}
}

func TestExtractTurnTruncated(t *testing.T) {
	if res := ExtractTurn(`{"transcript": "kes`); res.Status != ParseNoMatch {
		t.Fatalf("status = %s, want no_match", res.Status)
	}
}

func TestExtractTurnInvalidJSON(t *testing.T) {
	if res := ExtractTurn(`{transcript: eksik tirnak}`); res.Status != ParseInvalidJSON {
		t.Fatalf("status = %s, want invalid_json", res.Status)
	}
}

func TestExtractTurnMissingKeys(t *testing.T) {
	res := ExtractTurn(`{"intent": "greeting"}`)
	if res.Status != ParseOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if res.Turn.Transcript != "" {
		t.Fatalf("transcript = %q, want empty", res.Turn.Transcript)
	}
	if res.Turn.Slot == nil {
		t.Fatal("slot must be initialized for missing key")
	}
}

func TestExtractTurnCoercesTypes(t *testing.T) {
	res := ExtractTurn(`{"conversation_id": "12", "transcript": "  boşluklu  ", "intent": "thanks"}`)
	if res.Status != ParseOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if res.Turn.ConversationID != 12 {
		t.Fatalf("conversation_id = %d, want 12", res.Turn.ConversationID)
	}
	if res.Turn.Transcript != "boşluklu" {
		t.Fatalf("transcript = %q, want trimmed", res.Turn.Transcript)
	}
}
