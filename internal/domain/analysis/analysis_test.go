package analysis

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"filler/internal/domain/game"
)

func TestAnalysisJSONRoundTrip(t *testing.T) {
	in := Analysis{
		Color: 'g',
		Value: -3,
		Depth: 4,
		Side:  game.Player2,
		Candidates: []Candidate{
			{Color: 'g', Value: -3},
			{Color: 'k', Value: -5},
		},
		Nodes:     1234,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{`"color":"g"`, `"side":"O"`, `"color":"k"`} {
		if !strings.Contains(string(raw), frag) {
			t.Fatalf("encoded analysis %s lacks %s", raw, frag)
		}
	}

	var out Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out.Color != in.Color || out.Value != in.Value || out.Depth != in.Depth || out.Side != in.Side || out.Nodes != in.Nodes {
		t.Fatalf("round trip changed analysis: %+v -> %+v", in, out)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("created_at %v, want %v", out.CreatedAt, in.CreatedAt)
	}
	if len(out.Candidates) != len(in.Candidates) {
		t.Fatalf("candidates %+v, want %+v", out.Candidates, in.Candidates)
	}
	for i := range in.Candidates {
		if out.Candidates[i] != in.Candidates[i] {
			t.Fatalf("candidate %d: %+v, want %+v", i, out.Candidates[i], in.Candidates[i])
		}
	}
}

func TestAnalysisRejectsBadSide(t *testing.T) {
	var a Analysis
	if err := json.Unmarshal([]byte(`{"color":"g","side":"Z"}`), &a); err == nil {
		t.Fatalf("expected unknown side to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"color":"gg","side":"O"}`), &a); err == nil {
		t.Fatalf("expected multi-symbol color to be rejected")
	}
}
