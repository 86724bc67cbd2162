package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/videodanza/backend/internal/domain"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/kafka"
	"github.com/videodanza/backend/pkg/pubsub"
	"github.com/videodanza/backend/pkg/xcontext"
)

// startSubscriber tails the ledger event stream and writes an audit log.
// It is the reference observer; indexers and notification services follow
// the same topic.
func (s *srv) startSubscriber(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)

	subscriber := kafka.NewSubscriber(
		"videodanza-audit",
		[]string{s.configs.Kafka.Addr},
		[]string{domain.LedgerEventTopic},
		s.handleLedgerEvent,
	)
	subscriber.Subscribe(ctx)

	s.logger.Infof("Subscribed to %s", domain.LedgerEventTopic)
	<-ctx.Done()
	return subscriber.Stop(ctx)
}

func (s *srv) handleLedgerEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.LedgerEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal ledger event: %v", err)
		return
	}

	switch event.Type {
	case model.LedgerEventMinted:
		xcontext.Logger(ctx).Infof("%s | token %d minted by %s for seed %s",
			t.Format(time.RFC3339), event.TokenID, event.Owner, event.Seed)
	case model.LedgerEventMetadataUpdated:
		xcontext.Logger(ctx).Infof("%s | token %d metadata updated to %s",
			t.Format(time.RFC3339), event.TokenID, event.MetadataURI)
	case model.LedgerEventPriceUpdated:
		xcontext.Logger(ctx).Infof("%s | mint price updated to %s wei",
			t.Format(time.RFC3339), event.MintPrice)
	case model.LedgerEventWithdrawn:
		xcontext.Logger(ctx).Infof("%s | %s wei withdrawn to %s",
			t.Format(time.RFC3339), event.Amount, event.Owner)
	case model.LedgerEventTransferred:
		xcontext.Logger(ctx).Infof("%s | token %d transferred to %s",
			t.Format(time.RFC3339), event.TokenID, event.Owner)
	default:
		xcontext.Logger(ctx).Warnf("Unknown ledger event type %s", event.Type)
	}
}
