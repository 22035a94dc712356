package store

import (
	"context"
	"time"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/mykafka"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
)

func eventFor(a shop.Action, state models.AppState) map[string]any {
	event := map[string]any{
		"type":       string(a.Kind()),
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
	}
	if id := shop.ProductID(a); id != "" {
		event["productID"] = id
	}

	switch act := a.(type) {
	case shop.LoadingSuccess:
		event["products"] = len(state.Products)
	case shop.LoadingError:
		event["error"] = state.Loading.LoadingError
	case shop.EditCartItem:
		event["quantity"] = act.Quantity
	}
	if shop.IsCartAction(a) {
		event["cartCount"] = shop.CartCount(state.CartItems)
		event["cartTotal"] = shop.CartTotal(state.CartItems)
	}
	return event
}

func topicFor(a shop.Action) string {
	if shop.IsCartAction(a) {
		return mykafka.CartTopic
	}
	return mykafka.ProductTopic
}

func (s *Store) publish(ctx context.Context, a shop.Action, state models.AppState) {
	if s.publisher == nil {
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	key := shop.ProductID(a)
	if key == "" {
		key = string(a.Kind())
	}
	if err := s.publisher.PublishEvent(pctx, topicFor(a), key, eventFor(a, state)); err != nil {
		s.logger.Warn("publish_failed", "kind", a.Kind(), "error", err)
	}
}
