package route

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"packtravel/dates"
	"packtravel/services/user"
)

func TestCompositeID(t *testing.T) {
	input := Input{
		Purpose:     "class",
		StartPoint:  "Hunt Library",
		Destination: "NYC",
		Date:        "2026-09-01",
		Hour:        "09",
		Minute:      "30",
		AmPm:        "AM",
	}
	want := "class_Hunt Library_NYC_2026-09-01_09_30_AM"
	if got := CompositeID(input); got != want {
		t.Errorf("CompositeID = %q, want %q", got, want)
	}
}

func TestDateToken(t *testing.T) {
	id := "class_Hunt Library_NYC_2026-09-01_09_30_AM"
	got, err := DateToken(id)
	if err != nil {
		t.Fatalf("DateToken returned error: %v", err)
	}
	if got != "2026-09-01" {
		t.Errorf("DateToken = %q, want 2026-09-01", got)
	}

	if _, err := DateToken("not_enough_parts"); err == nil {
		t.Error("expected error for id with too few fields")
	}
}

func routeIDDated(date string) string {
	return fmt.Sprintf("class_EB2_NYC_%s_09_30_AM", date)
}

func TestIsActive(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format(dates.Layout)
	today := time.Now().Format(dates.Layout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dates.Layout)

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"yesterday is expired", routeIDDated(yesterday), false},
		{"today is active", routeIDDated(today), true},
		{"tomorrow is active", routeIDDated(tomorrow), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsActive(tt.id)
			if err != nil {
				t.Fatalf("IsActive(%q) returned error: %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("IsActive(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}

	t.Run("malformed date token propagates", func(t *testing.T) {
		if _, err := IsActive("class_EB2_NYC_someday_09_30_AM"); err == nil {
			t.Error("expected parse error for malformed date token")
		}
	})
}

func TestToggle(t *testing.T) {
	t.Run("join when absent", func(t *testing.T) {
		users, removed := toggle([]string{"u1", "u2"}, "u3")
		if removed {
			t.Error("expected a join, got a removal")
		}
		if !reflect.DeepEqual(users, []string{"u1", "u2", "u3"}) {
			t.Errorf("users = %v", users)
		}
	})

	t.Run("leave when present", func(t *testing.T) {
		users, removed := toggle([]string{"u1", "u2", "u3"}, "u2")
		if !removed {
			t.Error("expected a removal")
		}
		if !reflect.DeepEqual(users, []string{"u1", "u3"}) {
			t.Errorf("users = %v", users)
		}
	})

	t.Run("toggle twice restores original membership", func(t *testing.T) {
		original := []string{"u1", "u2"}
		once, _ := toggle(append([]string{}, original...), "u9")
		twice, _ := toggle(once, "u9")
		if !reflect.DeepEqual(twice, original) {
			t.Errorf("after join+leave users = %v, want %v", twice, original)
		}
	})

	t.Run("repeated joins never duplicate", func(t *testing.T) {
		users := []string{}
		for i := 0; i < 5; i++ {
			users, _ = toggle(users, "u1")
		}
		// Odd number of toggles: joined exactly once.
		if !reflect.DeepEqual(users, []string{"u1"}) {
			t.Errorf("after 5 toggles users = %v, want [u1]", users)
		}
	})
}

func TestChunk(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("r%d", i)
		}
		return out
	}

	tests := []struct {
		name      string
		n         int
		wantSizes []int
	}{
		{"empty yields no batches", 0, nil},
		{"single id", 1, []int{1}},
		{"exactly one full batch", 30, []int{30}},
		{"one over the limit splits", 31, []int{30, 1}},
		{"several batches", 65, []int{30, 30, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ids(tt.n)
			batches := chunk(in, maxInValues)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("chunk(%d ids) = %d batches, want %d", tt.n, len(batches), len(tt.wantSizes))
			}
			flat := make([]string, 0, tt.n)
			for i, batch := range batches {
				if len(batch) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d ids, want %d", i, len(batch), tt.wantSizes[i])
				}
				flat = append(flat, batch...)
			}
			if !reflect.DeepEqual(flat, in) {
				t.Errorf("recombined batches differ from input")
			}
		})
	}
}

func TestSelectJoined(t *testing.T) {
	routes := []DisplayRoute{
		{Route: Route{ID: "r1", Users: []string{"u2"}}},
		{Route: Route{ID: "r2", Users: []string{"u1", "u3"}}},
	}

	if got := selectJoined("u1", routes); got != "r2" {
		t.Errorf("selectJoined(u1) = %q, want r2", got)
	}
	if got := selectJoined("u9", routes); got != "" {
		t.Errorf("selectJoined(u9) = %q, want empty", got)
	}

	t.Run("selection clears after leaving", func(t *testing.T) {
		users, _ := toggle(routes[1].Route.Users, "u1")
		routes[1].Route.Users = users
		if got := selectJoined("u1", routes); got != "" {
			t.Errorf("selectJoined after leave = %q, want empty", got)
		}
	})
}

func TestRankFavorites(t *testing.T) {
	t.Run("orders by accumulated user count", func(t *testing.T) {
		routes := []Route{
			{ID: "a", Destination: "Asheville", Users: manyUsers(5)},
			{ID: "b", Destination: "Boone", Users: manyUsers(5)},
			{ID: "c", Destination: "Charlotte", Users: manyUsers(10)},
		}
		got := rankFavorites(routes)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].Destination != "Charlotte" || got[0].UserCount != 10 {
			t.Errorf("top pick = %+v, want Charlotte with 10", got[0])
		}
		// Ties keep first-seen order.
		if got[1].Destination != "Asheville" || got[2].Destination != "Boone" {
			t.Errorf("tie order = %s, %s; want Asheville, Boone", got[1].Destination, got[2].Destination)
		}
	})

	t.Run("accumulates routes sharing a destination", func(t *testing.T) {
		routes := []Route{
			{ID: "a", Destination: "New York", Users: manyUsers(3)},
			{ID: "b", Destination: "New York", Users: manyUsers(4)},
		}
		got := rankFavorites(routes)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].UserCount != 7 {
			t.Errorf("UserCount = %d, want 7", got[0].UserCount)
		}
		if got[0].Slug != "New%20York" {
			t.Errorf("Slug = %q, want New%%20York", got[0].Slug)
		}
	})

	t.Run("ignores routes with no joined users", func(t *testing.T) {
		routes := []Route{
			{ID: "a", Destination: "Durham", Users: nil},
			{ID: "b", Destination: "Raleigh", Users: manyUsers(1)},
		}
		got := rankFavorites(routes)
		if len(got) != 1 || got[0].Destination != "Raleigh" {
			t.Errorf("got %+v, want only Raleigh", got)
		}
	})

	t.Run("truncates to top 20", func(t *testing.T) {
		routes := make([]Route, 0, 25)
		for i := 0; i < 25; i++ {
			routes = append(routes, Route{
				ID:          fmt.Sprintf("r%d", i),
				Destination: fmt.Sprintf("city-%d", i),
				Users:       manyUsers(i + 1),
			})
		}
		got := rankFavorites(routes)
		if len(got) != 20 {
			t.Fatalf("len = %d, want 20", len(got))
		}
		if got[0].UserCount != 25 {
			t.Errorf("top count = %d, want 25", got[0].UserCount)
		}
		if got[19].UserCount != 6 {
			t.Errorf("last count = %d, want 6", got[19].UserCount)
		}
	})
}

func manyUsers(n int) []string {
	users := make([]string, n)
	for i := range users {
		users[i] = fmt.Sprintf("u%d", i)
	}
	return users
}

// The user-side rides list grows on every attach while the route-side
// list toggles; this pins the documented asymmetry at the logic level.
func TestAttachAsymmetry(t *testing.T) {
	const n = 4
	var rides []string
	routeUsers := []string{}
	for i := 0; i < n; i++ {
		rides = append(rides, "r1") // unconditional append, user side
		routeUsers, _ = toggle(routeUsers, "u1")
	}
	if len(rides) != n {
		t.Errorf("user rides grew to %d entries, want %d", len(rides), n)
	}
	if len(routeUsers) != 0 {
		// Even number of toggles lands on "not joined".
		t.Errorf("route users = %v, want empty after %d toggles", routeUsers, n)
	}

	rides = append(rides, "r1")
	routeUsers, _ = toggle(routeUsers, "u1")
	if len(rides) != n+1 || len(routeUsers) != 1 {
		t.Errorf("after odd attach: rides=%d users=%d, want %d and 1", len(rides), len(routeUsers), n+1)
	}
}

func TestDisplayRouteCarriesCreator(t *testing.T) {
	d := DisplayRoute{
		Route:   Route{ID: "r1", Distance: 12.34},
		Creator: user.User{ID: "u1", Username: "jdoe"},
	}
	if d.Creator.Username != "jdoe" {
		t.Errorf("creator not inlined: %+v", d.Creator)
	}
}
