package cmd

import (
	"github.com/sirupsen/logrus"

	"interestsearch/internal/eventbus"
)

// subscribeAudit logs every search and config event. It returns a function
// that removes the subscriptions.
func subscribeAudit(bus eventbus.EventBus, log logrus.FieldLogger) func() {
	log = log.WithField("component", "audit")

	types := []eventbus.EventType{
		eventbus.EventQueryChanged,
		eventbus.EventPageRequested,
		eventbus.EventPageMerged,
		eventbus.EventResponseDropped,
		eventbus.EventFetchFailed,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	}

	var unsubs []func()
	for _, t := range types {
		unsubs = append(unsubs, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			auditEntry(log, e)
		}))
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func auditEntry(log logrus.FieldLogger, e eventbus.DomainEvent) {
	entry := log.WithField("event", string(e.Type()))

	switch ev := e.(type) {
	case eventbus.QueryChangedEvent:
		entry.WithFields(logrus.Fields{
			"query":      ev.Query,
			"generation": ev.Generation,
		}).Info("query changed")
	case eventbus.PageRequestedEvent:
		entry.WithFields(logrus.Fields{
			"query":  ev.Query,
			"page":   ev.Page,
			"offset": ev.Offset,
			"limit":  ev.Limit,
		}).Debug("page requested")
	case eventbus.PageMergedEvent:
		entry.WithFields(logrus.Fields{
			"query":      ev.Query,
			"page":       ev.Page,
			"received":   ev.Received,
			"total":      ev.Total,
			"pages_left": ev.PagesLeft,
		}).Info("page merged")
	case eventbus.ResponseDroppedEvent:
		entry.WithFields(logrus.Fields{
			"query":              ev.Query,
			"generation":         ev.Generation,
			"current_generation": ev.CurrentGeneration,
		}).Debug("stale response dropped")
	case eventbus.FetchFailedEvent:
		entry.WithFields(logrus.Fields{
			"query": ev.Query,
			"page":  ev.Page,
		}).WithError(ev.Err).Warn("fetch failed")
	case eventbus.ConfigLoadedEvent:
		entry.WithFields(logrus.Fields{
			"path":     ev.Path,
			"endpoint": ev.Endpoint,
		}).Info("config loaded")
	case eventbus.ConfigSavedEvent:
		entry.WithField("path", ev.Path).Info("config saved")
	default:
		entry.Debug("event")
	}
}
