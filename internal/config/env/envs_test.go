package env

import (
	"encoding/base64"
	"testing"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestParseDefaults(t *testing.T) {
	values, err := Parse(lookupFrom(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if values.SERVER_PORT != 5000 {
		t.Errorf("port = %d, want 5000", values.SERVER_PORT)
	}
	if !values.DEBUG {
		t.Error("debug should default to true")
	}
	if values.PPROF {
		t.Error("pprof should default to false")
	}
	if values.GHOSTPAY_API_URL != DEFAULT_GHOSTPAY_API_URL {
		t.Errorf("api url = %q", values.GHOSTPAY_API_URL)
	}
	if !values.TestMode() {
		t.Error("missing secret key must enable test mode")
	}
	if values.BasicAuth != "" {
		t.Errorf("basic auth should be empty, got %q", values.BasicAuth)
	}
	if values.Addr() != "0.0.0.0:5000" {
		t.Errorf("addr = %q", values.Addr())
	}
}

func TestParseCredentials(t *testing.T) {
	values, err := Parse(lookupFrom(map[string]string{
		"GHOSTPAY_SECRET_KEY": "sk_live_123",
		"GHOSTPAY_COMPANY_ID": "company-1",
		"PORT":                "8080",
		"DEBUG":               "False",
	}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := base64.StdEncoding.EncodeToString([]byte("sk_live_123:"))
	if values.BasicAuth != want {
		t.Errorf("basic auth = %q, want %q", values.BasicAuth, want)
	}
	if values.TestMode() {
		t.Error("test mode should be off with a secret key")
	}
	if values.GHOSTPAY_COMPANY_ID != "company-1" {
		t.Errorf("company id = %q", values.GHOSTPAY_COMPANY_ID)
	}
	if values.SERVER_PORT != 8080 {
		t.Errorf("port = %d", values.SERVER_PORT)
	}
	if values.DEBUG {
		t.Error("debug should be false")
	}
}

func TestParseInvalidValuesKeepDefault(t *testing.T) {
	values, err := Parse(lookupFrom(map[string]string{
		"PORT":  "not-a-port",
		"DEBUG": "maybe",
	}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if values.SERVER_PORT != 5000 {
		t.Errorf("port = %d, want default", values.SERVER_PORT)
	}
	if !values.DEBUG {
		t.Error("debug should keep its default")
	}
}

func TestParsePprofFlag(t *testing.T) {
	values, err := Parse(lookupFrom(map[string]string{"PPROF": "true", "DEBUG": "false"}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !values.PPROF || values.DEBUG {
		t.Errorf("pprof/debug = %v/%v, want true/false", values.PPROF, values.DEBUG)
	}
}

func TestParseRejectsOutOfRangePort(t *testing.T) {
	if _, err := Parse(lookupFrom(map[string]string{"PORT": "70000"})); err == nil {
		t.Fatal("expected error for port 70000")
	}
}

func TestParseBlankSecretIsTestMode(t *testing.T) {
	values, err := Parse(lookupFrom(map[string]string{"GHOSTPAY_SECRET_KEY": "   "}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !values.TestMode() {
		t.Error("blank secret key must enable test mode")
	}
}

func TestMask(t *testing.T) {
	if got := mask(""); got != "<não configurada>" {
		t.Errorf("mask empty = %q", got)
	}
	if got := mask("abc"); got != "****" {
		t.Errorf("mask short = %q", got)
	}
	if got := mask("sk_live_123"); got != "sk_l*******" {
		t.Errorf("mask = %q", got)
	}
}
