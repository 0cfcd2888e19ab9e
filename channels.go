package pusher

import (
	"context"
	"strings"

	"github.com/dmitrymomot/pusher/pkg/channel"
)

// ChannelsParams filters the channel listing.
type ChannelsParams struct {
	FilterByPrefix string
	// Info requests attributes per channel, e.g. "user_count" for presence channels.
	Info []string
}

// ChannelInfo is the state of one channel.
type ChannelInfo struct {
	Occupied          bool `json:"occupied"`
	UserCount         *int `json:"user_count,omitempty"`
	SubscriptionCount *int `json:"subscription_count,omitempty"`
}

// ChannelList is the response of Channels.
type ChannelList struct {
	Channels map[string]ChannelInfo `json:"channels"`
}

// User is a member of a presence channel.
type User struct {
	ID string `json:"id"`
}

// UserList is the response of PresenceUsers.
type UserList struct {
	Users []User `json:"users"`
}

// Channels lists occupied channels. A failed call returns the *result.Error.
func (c *Client) Channels(ctx context.Context, p ChannelsParams) (*ChannelList, error) {
	params := map[string]string{}
	if p.FilterByPrefix != "" {
		params["filter_by_prefix"] = p.FilterByPrefix
	}
	if len(p.Info) > 0 {
		params["info"] = strings.Join(p.Info, ",")
	}

	res, err := c.Get(ctx, "/channels", params)
	if err != nil {
		return nil, err
	}
	if err := res.Error(); err != nil {
		return nil, err
	}

	var list ChannelList
	if err := res.DecodeJSON(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Channel fetches the state of a single channel.
func (c *Client) Channel(ctx context.Context, name string, info ...string) (*ChannelInfo, error) {
	if err := channel.ValidateName(name); err != nil {
		return nil, inputError(err)
	}
	params := map[string]string{}
	if len(info) > 0 {
		params["info"] = strings.Join(info, ",")
	}

	res, err := c.Get(ctx, "/channels/"+name, params)
	if err != nil {
		return nil, err
	}
	if err := res.Error(); err != nil {
		return nil, err
	}

	var ch ChannelInfo
	if err := res.DecodeJSON(&ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// PresenceUsers lists the members of a presence channel.
func (c *Client) PresenceUsers(ctx context.Context, name string) (*UserList, error) {
	if err := channel.ValidateName(name); err != nil {
		return nil, inputError(err)
	}
	if channel.KindOf(name) != channel.Presence {
		return nil, inputError(ErrNotPresence)
	}

	res, err := c.Get(ctx, "/channels/"+name+"/users", nil)
	if err != nil {
		return nil, err
	}
	if err := res.Error(); err != nil {
		return nil, err
	}

	var users UserList
	if err := res.DecodeJSON(&users); err != nil {
		return nil, err
	}
	return &users, nil
}
