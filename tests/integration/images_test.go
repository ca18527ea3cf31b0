//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/petal-labs/machinebox/boxes/facebox"
	"github.com/petal-labs/machinebox/boxes/tagbox"
)

// imageURL returns MACHINEBOX_TEST_IMAGE_URL, a picture with at least one
// face in it, or skips the test.
func imageURL(t *testing.T) string {
	t.Helper()
	u := os.Getenv("MACHINEBOX_TEST_IMAGE_URL")
	if u == "" {
		t.Skip("MACHINEBOX_TEST_IMAGE_URL not set")
	}
	return u
}

func TestFacebox_TeachAndCheck(t *testing.T) {
	fb := facebox.New(boxURL(t, facebox.BoxID))
	img := imageURL(t)
	waitReady(t, fb)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := fb.TeachURL(ctx, img, "integration-face", "Integration"); err != nil {
		t.Fatalf("TeachURL() error = %v", err)
	}
	t.Cleanup(func() {
		if err := fb.Remove(context.Background(), "integration-face"); err != nil {
			t.Logf("Remove() error = %v", err)
		}
	})

	resp, err := fb.CheckURL(ctx, img)
	if err != nil {
		t.Fatalf("CheckURL() error = %v", err)
	}
	matched := resp.Matched()
	if len(matched) == 0 || matched[0].Name != "Integration" {
		t.Errorf("Matched() = %+v, want the taught face", matched)
	}
}

func TestTagbox_CheckURL(t *testing.T) {
	tb := tagbox.New(boxURL(t, tagbox.BoxID))
	img := imageURL(t)
	waitReady(t, tb)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := tb.CheckURL(ctx, img)
	if err != nil {
		t.Fatalf("CheckURL() error = %v", err)
	}
	if len(resp.Tags) == 0 {
		t.Error("no tags returned")
	}
}
