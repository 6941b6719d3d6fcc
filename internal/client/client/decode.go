package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

// bookkeeping keys the backend mixes into mutation replies
var replyKeys = []string{"message", "success"}

func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}

// decodeList accepts a bare JSON array, or an object wrapping one under
// "results" or a declared envelope. Anything else is an empty list.
func decodeList(ctx context.Context, logger logging.Logger, body []byte, res models.Resource) ([]models.Record, error) {
	var raw any
	if err := decodeJSON(body, &raw); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", res.Name, err)
	}

	items, ok := raw.([]any)
	if !ok {
		if obj, isObj := raw.(map[string]any); isObj {
			for _, key := range append([]string{"results"}, res.Envelopes...) {
				if arr, found := obj[key].([]any); found {
					items, ok = arr, true
					break
				}
			}
		}
	}
	if !ok {
		logger.Warn(ctx, "list reply is not an array, treating as empty", "resource", res.Name)
		return []models.Record{}, nil
	}

	out := make([]models.Record, 0, len(items))
	for i, item := range items {
		obj, isObj := item.(map[string]any)
		if !isObj {
			return nil, fmt.Errorf("decode %s list: item %d is not an object", res.Name, i)
		}
		rec, err := models.DecodeRecord(obj, res.IDField)
		if err != nil {
			return nil, fmt.Errorf("decode %s list: item %d: %w", res.Name, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// decodeMutation extracts the record from a create/update reply. For an
// update the identifier is known and the reply may omit it. The returned
// record may be partial; callers merge what they submitted.
func decodeMutation(body []byte, res models.Resource, id string) (models.Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return models.Record{ID: id}, ErrNoRecord
	}

	var obj map[string]any
	if err := decodeJSON(body, &obj); err != nil {
		return models.Record{}, fmt.Errorf("decode %s reply: %w", res.Name, err)
	}
	for _, env := range res.Envelopes {
		if inner, ok := obj[env].(map[string]any); ok {
			obj = inner
			break
		}
	}
	for _, k := range replyKeys {
		delete(obj, k)
	}

	rec, err := models.DecodeRecord(obj, res.IDField)
	if errors.Is(err, models.ErrMissingID) {
		if id == "" || len(obj) == 0 {
			return models.Record{ID: id, Fields: obj}, ErrNoRecord
		}
		return models.Record{ID: id, Fields: obj}, nil
	}
	if err != nil {
		return models.Record{}, err
	}
	if id != "" && rec.ID != id {
		// the reply describes some other record; the caller resyncs
		return models.Record{ID: id}, ErrNoRecord
	}
	return rec, nil
}
