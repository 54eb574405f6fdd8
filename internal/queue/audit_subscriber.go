package queue

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

// StartAuditSubscriber persists change events from the events topic to
// the audit log. The payload is a model.AuditEvent when the in-memory
// queue delivers it in-process, or raw JSON when it comes off the broker.
func StartAuditSubscriber(q Queue, auditRepo repository.AuditRepositoryInterface) {
	err := q.Subscribe(EventsTopic, func(payload any) error {
		ev, err := decodeEvent(payload)
		if err != nil {
			log.Println("⚠️ dropping malformed event:", err)
			return nil // no retry
		}

		if err := auditRepo.Record(ev); err != nil {
			log.Println("⚠️ failed to record audit event:", err)
			return err // triggers retry in queue
		}
		return nil
	})

	if err != nil {
		log.Println("⚠️ failed to start audit subscriber:", err)
	}
}

func decodeEvent(payload any) (*model.AuditEvent, error) {
	switch p := payload.(type) {
	case model.AuditEvent:
		return &p, nil
	case *model.AuditEvent:
		return p, nil
	case []byte:
		var ev model.AuditEvent
		if err := json.Unmarshal(p, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("unexpected payload type %T", payload)
	}
}
