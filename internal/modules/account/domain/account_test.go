package domain_test

import (
	"testing"

	"cutrack/internal/modules/account/domain"
)

func TestNormalizeToken(t *testing.T) {
	t.Parallel()
	token, err := domain.NormalizeToken("  pk_12345678901  ")
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if token != "pk_12345678901" {
		t.Fatalf("token must be trimmed, got %q", token)
	}
	if _, err := domain.NormalizeToken("   "); err == nil {
		t.Fatalf("blank token must fail")
	}
	if _, err := domain.NormalizeToken("0123456789"); err == nil {
		t.Fatalf("ten character token must fail")
	}
}
