package core

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/info" {
			t.Errorf("Path = %s, want /info", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"name":"textbox","version":1,"build":"abc123","status":"ready","plan":"developer"}`))
	})

	info, err := client.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	want := BoxInfo{Success: true, Name: "textbox", Version: 1, Build: "abc123", Status: "ready", Plan: "developer"}
	if *info != want {
		t.Errorf("Info() = %+v, want %+v", *info, want)
	}
}

func TestInfoMissingName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"version":1}`))
	})

	_, err := client.Info(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Info() error = %v, want ErrDecode", err)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantSuccess bool
		wantErrors  int
	}{
		{
			name:        "healthy",
			body:        `{"success":true,"hostname":"box-1","metadata":{"boxname":"facebox","build":"b1"},"errors":[]}`,
			wantSuccess: true,
		},
		{
			name:        "unhealthy is a result",
			body:        `{"success":false,"hostname":"box-1","metadata":{"boxname":"facebox","build":"b1"},"errors":[{"error":"disk","description":"disk full"}]}`,
			wantSuccess: false,
			wantErrors:  1,
		},
		{
			name:        "unhealthy with 503 is a result",
			status:      http.StatusServiceUnavailable,
			body:        `{"success":false,"hostname":"box-1","metadata":{"boxname":"facebox","build":"b1"},"errors":[{"error":"model","description":"model not loaded"}]}`,
			wantSuccess: false,
			wantErrors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/healthz" {
					t.Errorf("Path = %s, want /healthz", r.URL.Path)
				}
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			})

			health, err := client.Health(context.Background())
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if health.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", health.Success, tt.wantSuccess)
			}
			if len(health.Errors) != tt.wantErrors {
				t.Errorf("len(Errors) = %d, want %d", len(health.Errors), tt.wantErrors)
			}
			if health.Metadata.Boxname != "facebox" {
				t.Errorf("Metadata.Boxname = %q, want facebox", health.Metadata.Boxname)
			}
		})
	}
}

func TestHealthServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":"starting","message":"box is starting"}`))
	})

	health, err := client.Health(context.Background())
	if health != nil {
		t.Errorf("Health() = %+v, want nil", health)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !errors.Is(err, ErrService) || !errors.Is(err, ErrServer) {
		t.Fatalf("Health() error = %v, want ErrService and ErrServer", err)
	}
	if apiErr.Message != "box is starting" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestLivenessReadiness(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"no content", http.StatusNoContent, false},
		{"unavailable", http.StatusServiceUnavailable, false},
		{"not found", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/liveness" && r.URL.Path != "/readyz" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			})

			live, err := client.IsLive(context.Background())
			if err != nil {
				t.Fatalf("IsLive() error = %v", err)
			}
			if live != tt.want {
				t.Errorf("IsLive() = %v, want %v", live, tt.want)
			}

			ready, err := client.IsReady(context.Background())
			if err != nil {
				t.Fatalf("IsReady() error = %v", err)
			}
			if ready != tt.want {
				t.Errorf("IsReady() = %v, want %v", ready, tt.want)
			}
		})
	}
}

func TestNotReadyIsNotReportedAsFailure(t *testing.T) {
	hook := &recordingHook{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithTelemetry(hook))

	ready, err := client.IsReady(context.Background())
	if err != nil || ready {
		t.Fatalf("IsReady() = %v, %v, want false, nil", ready, err)
	}
	if len(hook.ends) != 1 {
		t.Fatalf("got %d end events, want 1", len(hook.ends))
	}
	if end := hook.ends[0]; end.Err != nil || end.Status != http.StatusServiceUnavailable {
		t.Errorf("end event Status = %d, Err = %v, want 503 and no error", end.Status, end.Err)
	}
}

func TestLivenessUnreachable(t *testing.T) {
	client := New("http://[::1", WithBoxID("textbox"))

	live, err := client.IsLive(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("IsLive() error = %v, want ErrTransport", err)
	}
	if live {
		t.Error("IsLive() = true on transport failure")
	}
}
