package pusher

import "github.com/dmitrymomot/pusher/pkg/authorizer"

// Member identifies the user joining a presence channel.
type Member = authorizer.Member

// AuthorizePrivateChannel returns the JSON authorization document for a
// private or private-encrypted channel. Encrypted channels include the
// channel's shared secret.
func (c *Client) AuthorizePrivateChannel(socketID, channelName string) ([]byte, error) {
	doc, err := c.issuer.Private(socketID, channelName)
	if err != nil {
		return nil, classify(err)
	}
	return doc.MarshalJSON()
}

// AuthorizePresenceChannel returns the JSON authorization document for a presence channel.
func (c *Client) AuthorizePresenceChannel(socketID, channelName string, member Member) ([]byte, error) {
	doc, err := c.issuer.Presence(socketID, channelName, member)
	if err != nil {
		return nil, classify(err)
	}
	return doc.MarshalJSON()
}

// AuthorizeChannel picks the private or presence method by channel prefix.
// member is required for presence channels only.
func (c *Client) AuthorizeChannel(socketID, channelName string, member *Member) ([]byte, error) {
	doc, err := c.issuer.Authorize(socketID, channelName, member)
	if err != nil {
		return nil, classify(err)
	}
	return doc.MarshalJSON()
}
