package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRouteService_CreateSortsStopsByDay(t *testing.T) {
	ctx := context.Background()
	svc := NewRouteService(newMemoryRouteRepo())

	route, err := svc.Create(ctx, RouteInput{
		Title:        "Charyn and the Lakes",
		DurationDays: 3,
		Stops: []RouteStopInput{
			{DayNumber: 3, Title: "Kolsai Lakes"},
			{DayNumber: 1, Title: "Charyn Canyon", DurationLabel: "Half Day"},
			{DayNumber: 2, Title: "Saty Village"},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(route.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(route.Stops))
	}
	for i, want := range []int{1, 2, 3} {
		if route.Stops[i].DayNumber != want {
			t.Fatalf("stop %d has day %d, want %d", i, route.Stops[i].DayNumber, want)
		}
	}
	if route.Stops[0].DurationLabel != "Half Day" {
		t.Fatalf("explicit label lost: %q", route.Stops[0].DurationLabel)
	}
	if route.Stops[1].DurationLabel != "Full Day" {
		t.Fatalf("missing label must default to Full Day, got %q", route.Stops[1].DurationLabel)
	}
}

func TestRouteService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewRouteService(newMemoryRouteRepo())

	cases := []struct {
		name  string
		input RouteInput
	}{
		{"empty title", RouteInput{Title: "  ", DurationDays: 2}},
		{"zero duration", RouteInput{Title: "Trip", DurationDays: 0}},
		{"negative distance", RouteInput{Title: "Trip", DurationDays: 2, DistanceKM: -5}},
		{"untitled stop", RouteInput{Title: "Trip", DurationDays: 2,
			Stops: []RouteStopInput{{DayNumber: 1, Title: ""}}}},
		{"bad day number", RouteInput{Title: "Trip", DurationDays: 2,
			Stops: []RouteStopInput{{DayNumber: 0, Title: "Stop"}}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrRouteValidation) {
			t.Errorf("%s: got %v, want ErrRouteValidation", tc.name, err)
		}
	}
}

func TestRouteService_UpdateAndDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	svc := NewRouteService(newMemoryRouteRepo())

	input := RouteInput{Title: "Trip", DurationDays: 2}
	if _, err := svc.Update(ctx, uuid.New(), input); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("Update: got %v, want ErrRouteNotFound", err)
	}
	if err := svc.Delete(ctx, uuid.New()); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("Delete: got %v, want ErrRouteNotFound", err)
	}

	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("Get: got %v, want ErrRouteNotFound", err)
	}
}

func TestRouteService_UpdateReplacesStops(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRouteRepo()
	svc := NewRouteService(repo)

	created, err := svc.Create(ctx, RouteInput{
		Title:        "Steppe Ride",
		DurationDays: 2,
		Stops:        []RouteStopInput{{DayNumber: 1, Title: "Old Stop"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, RouteInput{
		Title:        "Steppe Ride",
		DurationDays: 2,
		Stops: []RouteStopInput{
			{DayNumber: 1, Title: "New Stop A"},
			{DayNumber: 2, Title: "New Stop B"},
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Stops) != 2 || updated.Stops[0].Title != "New Stop A" {
		t.Fatalf("stops were not replaced: %+v", updated.Stops)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(fetched.Stops) != 2 {
		t.Fatalf("persisted route has %d stops, want 2", len(fetched.Stops))
	}
}
