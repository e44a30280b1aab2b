package ownership

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-mediaui/pkg/media"
)

type profileFunc func(context.Context) (media.Profile, error)

func (f profileFunc) GetProfile(ctx context.Context) (media.Profile, error) { return f(ctx) }

func TestProfileChecker(t *testing.T) {
	profile := media.Profile{Username: "ada", Channels: []media.ChannelRef{{ID: "c1"}}}
	checker := ProfileChecker{Profiles: profileFunc(func(context.Context) (media.Profile, error) {
		return profile, nil
	})}

	cases := []struct {
		name    string
		channel *media.ChannelRef
		want    bool
	}{
		{"owned", &media.ChannelRef{ID: "c1"}, true},
		{"other", &media.ChannelRef{ID: "c2"}, false},
		{"no channel", nil, false},
		{"empty id", &media.ChannelRef{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := checker.CanEdit(context.Background(), tc.channel)
			if err != nil {
				t.Fatalf("can edit: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestProfileChecker_Error(t *testing.T) {
	cause := errors.New("unauthorized")
	checker := ProfileChecker{Profiles: profileFunc(func(context.Context) (media.Profile, error) {
		return media.Profile{}, cause
	})}

	ok, err := checker.CanEdit(context.Background(), &media.ChannelRef{ID: "c1"})
	if ok || !errors.Is(err, cause) {
		t.Fatalf("expected denial with wrapped cause, got %v %v", ok, err)
	}

	if ok, err := (ProfileChecker{}).CanEdit(context.Background(), &media.ChannelRef{ID: "c1"}); ok || err == nil {
		t.Fatalf("missing source must fail closed")
	}
}

func TestStatic(t *testing.T) {
	ctx := context.Background()

	if ok, _ := (Static{"c1"}).CanEdit(ctx, &media.ChannelRef{ID: "c1"}); !ok {
		t.Fatalf("listed channel must be editable")
	}
	if ok, _ := (Static{"c1"}).CanEdit(ctx, &media.ChannelRef{ID: "c2"}); ok {
		t.Fatalf("unlisted channel must not be editable")
	}
	if ok, _ := (Static{"c1"}).CanEdit(ctx, nil); ok {
		t.Fatalf("missing channel must not be editable")
	}
	if ok, _ := (Static{"*"}).CanEdit(ctx, nil); !ok {
		t.Fatalf("wildcard must allow everything")
	}
	if ok, _ := Static(nil).CanEdit(ctx, &media.ChannelRef{ID: "c1"}); ok {
		t.Fatalf("empty set must deny")
	}
}
