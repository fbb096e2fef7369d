package webhooksvc

import (
	"buyza_commerce/internal/api/webhook/dto"
)

// ExtractInbound walks the Cloud API envelope down to the first message:
// entry[0].changes[0].value.messages[0]. Every hop is optional; a
// payload missing any of them (status callbacks, delivery receipts,
// zero-entry pings) yields nil rather than an error - such events are
// acknowledged but carry nothing to process.
func ExtractInbound(payload map[string]interface{}) *dto.InboundEvent {
	value := dig(payload, "entry", "changes", "value")
	if value == nil {
		return nil
	}

	message := firstOf(value, "messages")
	if message == nil {
		return nil
	}

	from, _ := message["from"].(string)
	if from == "" {
		return nil
	}

	event := &dto.InboundEvent{
		SenderID:  from,
		MessageID: str(message, "id"),
	}
	event.MessageType, _ = message["type"].(string)
	event.Text = extractText(message)
	return event
}

// extractText pulls the human text out of the message, preferring plain
// text, then button taps, then interactive replies.
func extractText(message map[string]interface{}) string {
	if text, ok := message["text"].(map[string]interface{}); ok {
		if body := str(text, "body"); body != "" {
			return body
		}
	}
	if button, ok := message["button"].(map[string]interface{}); ok {
		if t := str(button, "text"); t != "" {
			return t
		}
	}
	if interactive, ok := message["interactive"].(map[string]interface{}); ok {
		if reply, ok := interactive["button_reply"].(map[string]interface{}); ok {
			if t := str(reply, "title"); t != "" {
				return t
			}
		}
		if reply, ok := interactive["list_reply"].(map[string]interface{}); ok {
			if t := str(reply, "title"); t != "" {
				return t
			}
		}
	}
	return ""
}

// dig descends through the envelope, taking the first element of each
// named array, and returns the final object or nil.
func dig(node map[string]interface{}, keys ...string) map[string]interface{} {
	current := node
	for _, key := range keys {
		if current == nil {
			return nil
		}
		switch v := current[key].(type) {
		case []interface{}:
			if len(v) == 0 {
				return nil
			}
			obj, ok := v[0].(map[string]interface{})
			if !ok {
				return nil
			}
			current = obj
		case map[string]interface{}:
			current = v
		default:
			return nil
		}
	}
	return current
}

// firstOf returns the first object of the named array field, or nil.
func firstOf(node map[string]interface{}, key string) map[string]interface{} {
	arr, ok := node[key].([]interface{})
	if !ok || len(arr) == 0 {
		return nil
	}
	obj, ok := arr[0].(map[string]interface{})
	if !ok {
		return nil
	}
	return obj
}

func str(node map[string]interface{}, key string) string {
	s, _ := node[key].(string)
	return s
}
