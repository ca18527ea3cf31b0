package core

import (
	"strings"
	"testing"
)

type codecSentence struct {
	Text      string  `json:"text" validate:"required"`
	Sentiment float64 `json:"sentiment" validate:"min=0,max=1"`
}

type codecAnalysis struct {
	Sentences []codecSentence `json:"sentences" validate:"required,dive"`
}

func TestJSONCodecContentType(t *testing.T) {
	if got := (JSONCodec{}).ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want application/json", got)
	}
}

func TestJSONCodecUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"sentences":[{"text":"Hi.","sentiment":0.5}]}`, ""},
		{"unknown fields ignored", `{"sentences":[{"text":"Hi.","sentiment":0.5,"extra":true}],"more":1}`, ""},
		{"empty sentences present", `{"sentences":[]}`, ""},
		{"missing sentences", `{}`, `missing required field "codecAnalysis.sentences"`},
		{"missing text", `{"sentences":[{"sentiment":0.5}]}`, `missing required field "codecAnalysis.sentences[0].text"`},
		{"sentiment out of range", `{"sentences":[{"text":"Hi.","sentiment":2}]}`, `failed "max" check`},
		{"wrong type", `{"sentences":[{"text":"Hi.","sentiment":"high"}]}`, "cannot unmarshal"},
		{"not json", `<html>`, "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out codecAnalysis
			err := JSONCodec{}.Unmarshal([]byte(tt.body), &out)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unmarshal() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Unmarshal() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Unmarshal() error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestJSONCodecUnmarshalNonStruct(t *testing.T) {
	var out map[string]any
	if err := (JSONCodec{}).Unmarshal([]byte(`{"a":1}`), &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["a"] != float64(1) {
		t.Errorf("out[a] = %v, want 1", out["a"])
	}
}
