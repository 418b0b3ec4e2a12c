// Package usersink forwards activity events into a go-users activity sink.
package usersink

import (
	"context"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/pkg/activity"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Hook maps activity events onto go-users ActivityRecord values.
type Hook struct {
	Sink interfaces.ActivitySink
}

func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || strings.TrimSpace(event.Verb) == "" {
		return nil
	}

	data := make(map[string]any, len(event.Metadata)+2)
	maps.Copy(data, event.Metadata)
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = append([]string(nil), event.Recipients...)
	}

	record := interfaces.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       data,
		OccurredAt: event.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
