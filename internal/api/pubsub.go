package api

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bioprephq/bioprep/internal/domain"
)

const maxConcurrent = 100

type (
	Notification struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}

	RecordCreated struct {
		Kind  string `json:"kind"`
		ID    string `json:"id"`
		Title string `json:"title"`
	}
)

// PublishRecordCreated fans the creation notice out to the kind-scoped
// channel and the firehose channel subscribed by open dashboards.
func (a *API) PublishRecordCreated(ctx context.Context, event string, r domain.Record) error {
	data := RecordCreated{
		Kind:  string(r.Kind),
		ID:    r.ID,
		Title: r.Title,
	}

	channels := []string{
		fmt.Sprintf("%s:notifications:%s", a.prefix, r.Kind),
		fmt.Sprintf("%s:notifications:all", a.prefix),
	}

	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)

	for _, ch := range channels {
		ch := ch
		eg.Go(func() error {
			return a.publishNotification(ctx, ch, event, data)
		})
	}

	return eg.Wait()
}

func (a *API) publishNotification(ctx context.Context, channel, event string, data any) error {
	n := Notification{
		Event: event,
		Data:  data,
	}

	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %v", event, err)
	}

	return a.redis.Publish(ctx, channel, b).Err()
}
