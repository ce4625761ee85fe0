package webhook

import (
	"encoding/base64"
	"fmt"

	"github.com/wolfman30/lead-webhook/internal/leads"
)

// Event is the part of an invocation the pipeline reads.
type Event struct {
	Payload leads.Value
	Path    string
}

// ParseEvent decodes a raw invocation. API Gateway style events carry the
// lead as a JSON string in "body"; direct invocations are the lead itself.
func ParseEvent(raw []byte) (Event, error) {
	root, err := leads.Decode(raw)
	if err != nil {
		return Event{}, err
	}

	event := Event{Payload: root, Path: stringMember(root, "path")}
	if event.Path == "" {
		event.Path = stringMember(root, "rawPath")
	}

	body, ok := root.Lookup("body")
	if !ok || body.Kind == leads.Null {
		return event, nil
	}
	if body.Kind != leads.String {
		event.Payload = body
		return event, nil
	}

	data := []byte(body.Text)
	if encoded, ok := root.Lookup("isBase64Encoded"); ok && encoded.Kind == leads.Bool && encoded.Bool {
		data, err = base64.StdEncoding.DecodeString(body.Text)
		if err != nil {
			return Event{}, fmt.Errorf("%w: body is not valid base64: %v", leads.ErrMalformedPayload, err)
		}
	}

	event.Payload, err = leads.Decode(data)
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

func stringMember(v leads.Value, key string) string {
	member, ok := v.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := member.Str()
	return s
}
