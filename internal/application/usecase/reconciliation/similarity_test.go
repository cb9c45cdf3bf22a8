package reconciliation

import "testing"

func TestPartialRatio(t *testing.T) {
	t.Run("exact substring scores 100", func(t *testing.T) {
		if got := PartialRatio("pago fact a000123456", "a000123456"); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("identical strings score 100", func(t *testing.T) {
		if got := PartialRatio("a000123456", "a000123456"); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		if got := PartialRatio("", "a000123456"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := PartialRatio("pago", ""); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("near match scores high but below 100", func(t *testing.T) {
		got := PartialRatio("spei recibido ref 0175802607", "0175802608")
		if got >= 100 || got < 80 {
			t.Errorf("expected score in [80,100), got %d", got)
		}
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		if got := PartialRatio("comision mensual", "a000123456"); got >= 50 {
			t.Errorf("expected score below 50, got %d", got)
		}
	})

	t.Run("symmetric in argument order", func(t *testing.T) {
		a := PartialRatio("pago fact a000123456", "a000123456")
		b := PartialRatio("a000123456", "pago fact a000123456")
		if a != b {
			t.Errorf("expected symmetric scores, got %d and %d", a, b)
		}
	})
}
