package relay

import (
	"context"
	"log"

	"github.com/bwmarrin/snowflake"
	"github.com/diamondburned/eggboard/client"
	"github.com/pkg/errors"
)

// HTTPRelay posts submissions to a form relay endpoint as multipart form data.
type HTTPRelay struct {
	client *client.Client
	url    string
	ids    *snowflake.Node
}

var _ Relay = (*HTTPRelay)(nil)

// NewHTTPRelay creates a relay that posts to the given URL. Node is the
// snowflake node used to tag attempts in the logs.
func NewHTTPRelay(c *client.Client, url string, node int64) (*HTTPRelay, error) {
	if url == "" {
		return nil, errors.New("missing relay URL")
	}

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create snowflake node")
	}

	return &HTTPRelay{client: c, url: url, ids: n}, nil
}

func (r *HTTPRelay) Send(ctx context.Context, env Envelope) error {
	id := r.ids.Generate()

	if err := r.client.PostMultipart(ctx, r.url, env.Encode(), nil); err != nil {
		log.Printf("Submission %s failed to relay: %v", id, err)
		return errors.Wrap(err, "Failed to relay submission")
	}

	log.Printf("Submission %s relayed", id)
	return nil
}
