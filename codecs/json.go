package codecs

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/kyuff/esfeed"
)

// Content is a typed event payload. EventName is used as the event type on the stream.
type Content interface {
	EventName() string
}

func NewJSON() *JSON {
	return &JSON{
		content: make(map[string]reflect.Type),
	}
}

// JSON maps event types to registered Content types.
type JSON struct {
	mu      sync.RWMutex
	content map[string]reflect.Type
}

// Encode turns the content into an event ready to publish.
func (j *JSON) Encode(content Content) (esfeed.NewEvent, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return esfeed.NewEvent{}, err
	}

	return esfeed.NewEvent{
		EventType: content.EventName(),
		Data:      json.RawMessage(data),
	}, nil
}

// Decode reads the data of the event into the Content registered for its type.
func (j *JSON) Decode(event esfeed.Event) (Content, error) {
	j.mu.RLock()
	tp, ok := j.content[event.Type]
	j.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown content type %s", event.Type)
	}

	value := reflect.New(tp)
	err := json.Unmarshal(event.Data, value.Interface())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", event.Type, err)
	}

	return value.Elem().Interface().(Content), nil
}

func (j *JSON) Register(contentTypes ...Content) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, contentType := range contentTypes {
		name := contentType.EventName()
		if tp, ok := j.content[name]; ok && tp != reflect.TypeOf(contentType) {
			return fmt.Errorf("content type %s already registered as %s", name, tp)
		}
		j.content[name] = reflect.TypeOf(contentType)
	}

	return nil
}
