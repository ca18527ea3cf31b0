//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/petal-labs/machinebox/boxes/textbox"
)

func TestTextbox_Check(t *testing.T) {
	tb := textbox.New(boxURL(t, textbox.BoxID))
	waitReady(t, tb)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	analysis, err := tb.Check(ctx, "Pay William $200 tomorrow. I love this product!")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(analysis.Sentences) != 2 {
		t.Fatalf("len(Sentences) = %d, want 2", len(analysis.Sentences))
	}
	if people := analysis.Entities(textbox.EntityPerson); len(people) == 0 {
		t.Error("no person entity found")
	}
	if s := analysis.Sentences[1].Sentiment; s < 0.5 {
		t.Errorf("Sentiment = %v, want positive", s)
	}
}

func TestTextbox_Info(t *testing.T) {
	tb := textbox.New(boxURL(t, textbox.BoxID))

	info, err := tb.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Name != textbox.BoxID {
		t.Errorf("Name = %q, want %q", info.Name, textbox.BoxID)
	}
}
