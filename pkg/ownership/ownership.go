// Package ownership decides whether the current user may edit a channel's
// media.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/media"
)

// ProfileSource returns the current user's profile.
type ProfileSource interface {
	GetProfile(ctx context.Context) (media.Profile, error)
}

// ProfileChecker grants edit rights on channels listed in the profile.
// Items without a channel are not editable.
type ProfileChecker struct {
	Profiles ProfileSource
}

var _ edit.OwnershipChecker = ProfileChecker{}

// CanEdit fetches the profile and looks the channel up in it.
func (p ProfileChecker) CanEdit(ctx context.Context, channel *media.ChannelRef) (bool, error) {
	if channel == nil || channel.ID == "" {
		return false, nil
	}
	if p.Profiles == nil {
		return false, errors.New("ownership: no profile source")
	}
	profile, err := p.Profiles.GetProfile(ctx)
	if err != nil {
		return false, fmt.Errorf("ownership: load profile: %w", err)
	}
	return profile.OwnsChannel(channel.ID), nil
}

// Static grants edit rights on a fixed set of channel ids. "*" allows every
// channel, including items without one.
type Static []string

var _ edit.OwnershipChecker = Static(nil)

// CanEdit reports whether the channel id is listed.
func (s Static) CanEdit(_ context.Context, channel *media.ChannelRef) (bool, error) {
	id := ""
	if channel != nil {
		id = channel.ID
	}
	for _, allowed := range s {
		if allowed == "*" || (id != "" && allowed == id) {
			return true, nil
		}
	}
	return false, nil
}
