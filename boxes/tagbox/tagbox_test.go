package tagbox

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/petal-labs/machinebox/boxes"
	"github.com/petal-labs/machinebox/boxes/internal/boxtest"
	"github.com/petal-labs/machinebox/core"
)

const checkReply = `{
	"success": true,
	"tags": [
		{"tag": "dog", "confidence": 0.93},
		{"tag": "grass", "confidence": 0.4}
	],
	"custom_tags": [
		{"tag": "rex", "confidence": 0, "id": "rex1.jpg"}
	]
}`

func TestCheck(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/check", http.StatusOK, checkReply)

	resp, err := New(srv.URL).Check(context.Background(), strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(resp.Tags) != 2 || resp.Tags[0].Tag != "dog" || *resp.Tags[0].Confidence != 0.93 {
		t.Errorf("Tags = %+v", resp.Tags)
	}
	if len(resp.CustomTags) != 1 {
		t.Fatalf("len(CustomTags) = %d, want 1", len(resp.CustomTags))
	}
	custom := resp.CustomTags[0]
	if custom.Confidence == nil || *custom.Confidence != 0 || custom.ID != "rex1.jpg" {
		t.Errorf("CustomTags[0] = %+v, want zero confidence present", custom)
	}
	if got := string(srv.Last().Multipart(t)["file"].Data); got != "jpeg-bytes" {
		t.Errorf("file part = %q", got)
	}
}

func TestCheckURLAndBase64(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/check", http.StatusOK, checkReply)
	tb := New(srv.URL)

	if _, err := tb.CheckURL(context.Background(), "https://example.com/dog.jpg"); err != nil {
		t.Fatalf("CheckURL() error = %v", err)
	}
	var sent urlRequest
	srv.Last().JSON(t, &sent)
	if sent.URL != "https://example.com/dog.jpg" {
		t.Errorf("url = %q", sent.URL)
	}

	if _, err := tb.CheckBase64(context.Background(), "ZG9n"); err != nil {
		t.Fatalf("CheckBase64() error = %v", err)
	}
	if got := srv.Last().Form(t).Get("base64"); got != "ZG9n" {
		t.Errorf("base64 = %q", got)
	}
}

func TestCheckMissingConfidence(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/check", http.StatusOK, `{"success":true,"tags":[{"tag":"dog"}]}`)

	resp, err := New(srv.URL).CheckURL(context.Background(), "https://example.com/dog.jpg")
	if err != nil {
		t.Fatalf("CheckURL() error = %v", err)
	}
	if resp.Tags[0].Confidence != nil {
		t.Errorf("Confidence = %v, want nil", *resp.Tags[0].Confidence)
	}
}

func TestCheckDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tag without name", `{"tags":[{"confidence":0.5}]}`},
		{"confidence out of range", `{"tags":[{"tag":"dog","confidence":1.2}]}`},
		{"tags not a list", `{"tags":"dog"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := boxtest.New(t)
			srv.Reply("POST /tagbox/check", http.StatusOK, tt.body)

			_, err := New(srv.URL).CheckURL(context.Background(), "https://example.com/dog.jpg")
			if !errors.Is(err, core.ErrDecode) {
				t.Errorf("CheckURL() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestTeachURL(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/teach", http.StatusOK, `{"success":true}`)
	tb := New(srv.URL)

	if err := tb.TeachURL(context.Background(), "https://example.com/rex.jpg", "rex", "rex1.jpg"); err != nil {
		t.Fatalf("TeachURL() error = %v", err)
	}
	var sent teachRequest
	srv.Last().JSON(t, &sent)
	if sent != (teachRequest{Tag: "rex", ID: "rex1.jpg", URL: "https://example.com/rex.jpg"}) {
		t.Errorf("sent = %+v", sent)
	}

	if err := tb.TeachURL(context.Background(), "https://example.com/rex2.jpg", "rex", ""); err != nil {
		t.Fatalf("TeachURL() error = %v", err)
	}
	if body := string(srv.Last().Body); strings.Contains(body, `"id"`) {
		t.Errorf("body = %s, want no id", body)
	}
}

func TestTeachRejected(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/teach", http.StatusOK, `{"success":false}`)

	err := New(srv.URL).TeachURL(context.Background(), "https://example.com/x.jpg", "x", "")
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("TeachURL() error = %v, want *core.APIError", err)
	}
	if apiErr.Message != "request failed" {
		t.Errorf("Message = %q, want request failed", apiErr.Message)
	}
}

func TestCustomTagEdits(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("DELETE /tagbox/teach/rex1.jpg", http.StatusOK, `{"success":true}`)
	srv.Reply("PATCH /tagbox/teach/rex1.jpg", http.StatusOK, `{"success":true}`)
	tb := New(srv.URL)

	if err := tb.RenameCustomTag(context.Background(), "rex1.jpg", "Rex"); err != nil {
		t.Fatalf("RenameCustomTag() error = %v", err)
	}
	var sent renameRequest
	srv.Last().JSON(t, &sent)
	if sent.Tag != "Rex" {
		t.Errorf("tag = %q", sent.Tag)
	}

	if err := tb.RemoveCustomTag(context.Background(), "rex1.jpg"); err != nil {
		t.Fatalf("RemoveCustomTag() error = %v", err)
	}

	if err := tb.RemoveCustomTag(context.Background(), ""); !errors.Is(err, ErrTagIDRequired) {
		t.Errorf("RemoveCustomTag(\"\") error = %v", err)
	}
	if err := tb.RenameCustomTag(context.Background(), "", "x"); !errors.Is(err, ErrTagIDRequired) {
		t.Errorf("RenameCustomTag(\"\") error = %v", err)
	}
	if n := len(srv.Requests()); n != 2 {
		t.Errorf("box received %d requests, want 2", n)
	}
}

func TestSimilar(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("POST /tagbox/similar", http.StatusOK, `{"success":true,"similar":[{"tag":"rex","id":"rex1.jpg"}]}`)
	tb := New(srv.URL)
	ctx := context.Background()

	similar, err := tb.Similar(ctx, strings.NewReader("img"))
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(similar) != 1 || similar[0].ID != "rex1.jpg" {
		t.Errorf("Similar() = %+v", similar)
	}

	if _, err := tb.SimilarURL(ctx, "https://example.com/dog.jpg"); err != nil {
		t.Fatalf("SimilarURL() error = %v", err)
	}
	if got := srv.Last().Form(t).Get("url"); got != "https://example.com/dog.jpg" {
		t.Errorf("url = %q", got)
	}

	if _, err := tb.SimilarBase64(ctx, "aW1n"); err != nil {
		t.Fatalf("SimilarBase64() error = %v", err)
	}
	if got := srv.Last().Form(t).Get("base64"); got != "aW1n" {
		t.Errorf("base64 = %q", got)
	}
}

func TestState(t *testing.T) {
	srv := boxtest.New(t)
	srv.Handle("GET /tagbox/state", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tagbox-state"))
	})
	srv.Reply("POST /tagbox/state", http.StatusOK, `{"success":true}`)
	tb := New(srv.URL)

	var buf bytes.Buffer
	n, err := tb.DownloadState(context.Background(), &buf)
	if err != nil || n != int64(len("tagbox-state")) {
		t.Fatalf("DownloadState() = %d, %v", n, err)
	}
	if err := tb.UploadState(context.Background(), &buf); err != nil {
		t.Fatalf("UploadState() error = %v", err)
	}
	if got := string(srv.Last().Multipart(t)["file"].Data); got != "tagbox-state" {
		t.Errorf("uploaded state = %q", got)
	}
	if err := tb.UploadStateURL(context.Background(), "https://example.com/s.tagbox"); err != nil {
		t.Fatalf("UploadStateURL() error = %v", err)
	}
}

func TestStateDownloadFailure(t *testing.T) {
	srv := boxtest.New(t)
	srv.Reply("GET /tagbox/state", http.StatusInternalServerError, `{"message":"disk full"}`)

	var buf bytes.Buffer
	_, err := New(srv.URL).DownloadState(context.Background(), &buf)
	if !errors.Is(err, core.ErrServer) {
		t.Errorf("DownloadState() error = %v, want ErrServer", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q on failure", buf.Bytes())
	}
}

func TestRegistered(t *testing.T) {
	box, err := boxes.Create(BoxID, "http://localhost:8080")
	if err != nil {
		t.Fatalf("boxes.Create() error = %v", err)
	}
	if _, ok := box.(*Tagbox); !ok {
		t.Errorf("boxes.Create() = %T, want *Tagbox", box)
	}
}

func TestCheckResponseRoundTrip(t *testing.T) {
	boxtest.RoundTrip(t, `{
		"tags": [{"tag": "dog", "confidence": 0.8}, {"tag": "grass", "confidence": 0}],
		"custom_tags": [{"tag": "rex", "confidence": 0.6, "id": "img-1"}, {"tag": "untagged"}]
	}`, &CheckResponse{})
}
