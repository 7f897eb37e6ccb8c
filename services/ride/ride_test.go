package ride

import (
	"fmt"
	"testing"
	"time"

	"packtravel/dates"
)

func routeIDDated(date string) string {
	return fmt.Sprintf("class_EB2_NYC_%s_09_30_AM", date)
}

func TestCountActive(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format(dates.Layout)
	today := time.Now().Format(dates.Layout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dates.Layout)

	t.Run("counts only upcoming routes", func(t *testing.T) {
		ids := []string{
			routeIDDated(yesterday),
			routeIDDated(today),
			routeIDDated(tomorrow),
		}
		got, err := countActive(ids)
		if err != nil {
			t.Fatalf("countActive returned error: %v", err)
		}
		if got != 2 {
			t.Errorf("countActive = %d, want 2 (today and tomorrow)", got)
		}
	})

	t.Run("empty ride counts zero", func(t *testing.T) {
		got, err := countActive(nil)
		if err != nil {
			t.Fatalf("countActive returned error: %v", err)
		}
		if got != 0 {
			t.Errorf("countActive = %d, want 0", got)
		}
	})

	t.Run("malformed id propagates the error", func(t *testing.T) {
		if _, err := countActive([]string{"garbage"}); err == nil {
			t.Error("expected error for malformed route id")
		}
	})
}
