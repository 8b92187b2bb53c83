package config

import (
	"strings"
	"testing"
)

func TestValidateEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https endpoint", "https://script.google.com/macros/s/abc/exec", false},
		{"http endpoint", "http://localhost:8080/exec", false},
		{"missing scheme", "script.google.com/exec", true},
		{"unsupported scheme", "ftp://example.com", true},
		{"no host", "https://", true},
		{"garbage", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpointURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpointURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Endpoint.TimeoutSeconds = 0
	cfg.Sync.IntervalSeconds = 0
	cfg.TUI.PageSize = 0
	cfg.Logging.MaxSizeMB = 0

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Fatalf("len(errs) = %d, want 4: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"endpoint.timeout_seconds", "sync.interval_seconds", "tui.page_size", "logging.max_size_mb"} {
		if !fields[want] {
			t.Errorf("missing validation error for %s", want)
		}
	}
}

func TestValidateLoggingLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
	}
	if errs[0].Field != "logging.level" {
		t.Errorf("Field = %q, want logging.level", errs[0].Field)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a.b", Value: 1, Message: "bad"},
		{Field: "c.d", Value: "x", Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q, want count prefix", msg)
	}

	one := ValidationErrors{{Field: "a.b", Value: 1, Message: "bad"}}
	if got := one.Error(); got != "a.b: bad (got: 1)" {
		t.Errorf("single Error() = %q", got)
	}

	var none ValidationErrors
	if none.Error() != "" {
		t.Errorf("empty Error() = %q, want empty", none.Error())
	}
}
