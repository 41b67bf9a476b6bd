package activity

import (
	"strings"
	"time"
)

const (
	VerbFieldUpdated  = "reactive.field.updated"
	VerbModuleUpdated = "reactive.module.updated"

	ObjectTypeField  = "reactive.field"
	ObjectTypeModule = "reactive.module"
)

// FieldEventInput describes one field change produced by a batch update.
type FieldEventInput struct {
	ActorID     string
	UserID      string
	TenantID    string
	Channel     string
	Class       string
	Instance    string
	Field       string
	OldValue    any
	NewValue    any
	UpdatedKeys []string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// ModuleEventInput summarizes a whole batch update.
type ModuleEventInput struct {
	ActorID     string
	UserID      string
	TenantID    string
	Channel     string
	Class       string
	Instance    string
	UpdatedKeys []string
	Previous    map[string]any
	Current     map[string]any
	Metadata    map[string]any
	OccurredAt  time.Time
}

// BuildFieldUpdatedEvent constructs an event for one changed field. The
// object id is "<class>.<field>", or the field alone for anonymous classes.
func BuildFieldUpdatedEvent(input FieldEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = ensureMetadata(metadata)
	metadata["field"] = input.Field
	if input.Class != "" {
		metadata["class"] = input.Class
	}
	if input.Instance != "" {
		metadata["instance"] = input.Instance
	}
	if input.OldValue != nil {
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata["new_value"] = input.NewValue
	}
	if len(input.UpdatedKeys) > 0 {
		metadata["updated_keys"] = append([]string{}, input.UpdatedKeys...)
	}

	objectID := strings.TrimSpace(input.Field)
	if class := strings.TrimSpace(input.Class); class != "" && objectID != "" {
		objectID = class + "." + objectID
	}

	return Event{
		Verb:       VerbFieldUpdated,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeField,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// BuildModuleUpdatedEvent constructs the summary event for a batch update.
// The object id is the instance id.
func BuildModuleUpdatedEvent(input ModuleEventInput) Event {
	metadata := ensureMetadata(cloneMap(input.Metadata))
	metadata["updated_keys"] = append([]string{}, input.UpdatedKeys...)
	if input.Class != "" {
		metadata["class"] = input.Class
	}
	if len(input.Previous) > 0 {
		metadata["previous"] = cloneMap(input.Previous)
	}
	if len(input.Current) > 0 {
		metadata["current"] = cloneMap(input.Current)
	}

	return Event{
		Verb:       VerbModuleUpdated,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeModule,
		ObjectID:   strings.TrimSpace(input.Instance),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
