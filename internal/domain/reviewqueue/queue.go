// Package reviewqueue tracks skill names that missed the canonical
// dictionary, pending a human approve-or-reject decision.
package reviewqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bid-match/internal/domain/jdspec"
	"bid-match/internal/domain/skillname"
)

var (
	ErrEmptyName          = errors.New("skill name is empty")
	ErrEmptyCanonicalName = errors.New("canonical name is empty")
	ErrEmptyReason        = errors.New("rejection reason is empty")
	ErrNotFound           = errors.New("skill not in review queue")
	ErrAlreadyProcessed   = errors.New("queue item already processed")
	ErrInvalidCategory    = errors.New("invalid skill category")
)

// Status is the per-item workflow state. pending transitions once to
// approved or rejected; both are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Item is one unknown skill, keyed by its normalized name. Frequency counts
// every detection call; DetectedIn is a strict set of source ids.
type Item struct {
	SkillName       string    `json:"skill_name"`
	Frequency       int       `json:"frequency"`
	FirstDetectedAt time.Time `json:"first_detected_at"`
	DetectedIn      []string  `json:"detected_in"`
	Status          Status    `json:"status"`
}

// Decision records how an approval resolved: as a new canonical skill or as
// a variation of an existing one.
type Decision struct {
	SkillName     string           `json:"skill_name"`
	Decision      string           `json:"decision"`
	CanonicalName string           `json:"canonical_name"`
	Category      jdspec.TechLayer `json:"category,omitempty"`
	ApprovedAt    time.Time        `json:"approved_at"`
}

const (
	DecisionCanonical = "canonical"
	DecisionVariation = "variation"
)

// Rejection records a reject decision with its trimmed reason.
type Rejection struct {
	SkillName  string    `json:"skill_name"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// Queue is the process-wide unknown-skill review queue.
type Queue struct {
	items map[string]*Item
	order []string
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{items: make(map[string]*Item)}
}

// AddUnknownSkill records a detection of name in sourceID. A new normalized
// name creates a pending item with frequency 1; an existing one has its
// frequency bumped on every call, while sourceID joins DetectedIn only once.
func (q *Queue) AddUnknownSkill(name, sourceID string) error {
	key := skillname.Normalize(name)
	if key == "" {
		return ErrEmptyName
	}
	sourceID = strings.TrimSpace(sourceID)

	item, ok := q.items[key]
	if !ok {
		q.items[key] = &Item{
			SkillName:       key,
			Frequency:       1,
			FirstDetectedAt: time.Now().UTC(),
			DetectedIn:      appendSource(nil, sourceID),
			Status:          StatusPending,
		}
		q.order = append(q.order, key)
		return nil
	}

	item.Frequency++
	item.DetectedIn = appendSource(item.DetectedIn, sourceID)
	return nil
}

// ApproveAsCanonical moves a pending item to approved, recording that the
// skill becomes a canonical dictionary entry in the given category.
func (q *Queue) ApproveAsCanonical(name string, category jdspec.TechLayer) (Decision, error) {
	if !jdspec.IsValidLayer(category) {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	item, err := q.pendingItem(name)
	if err != nil {
		return Decision{}, err
	}

	item.Status = StatusApproved
	return Decision{
		SkillName:     item.SkillName,
		Decision:      DecisionCanonical,
		CanonicalName: item.SkillName,
		Category:      category,
		ApprovedAt:    time.Now().UTC(),
	}, nil
}

// ApproveAsVariation moves a pending item to approved as a variation of
// canonicalName. The queue does not verify the canonical target exists in
// the dictionary; the review workflow checks that before calling in.
func (q *Queue) ApproveAsVariation(name, canonicalName string) (Decision, error) {
	canonKey := skillname.Normalize(canonicalName)
	if canonKey == "" {
		return Decision{}, ErrEmptyCanonicalName
	}
	item, err := q.pendingItem(name)
	if err != nil {
		return Decision{}, err
	}

	item.Status = StatusApproved
	return Decision{
		SkillName:     item.SkillName,
		Decision:      DecisionVariation,
		CanonicalName: canonKey,
		ApprovedAt:    time.Now().UTC(),
	}, nil
}

// Reject moves a pending item to rejected with a non-blank reason.
func (q *Queue) Reject(name, reason string) (Rejection, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Rejection{}, ErrEmptyReason
	}
	item, err := q.pendingItem(name)
	if err != nil {
		return Rejection{}, err
	}

	item.Status = StatusRejected
	return Rejection{
		SkillName:  item.SkillName,
		Reason:     reason,
		RejectedAt: time.Now().UTC(),
	}, nil
}

func (q *Queue) pendingItem(name string) (*Item, error) {
	key := skillname.Normalize(name)
	if key == "" {
		return nil, ErrEmptyName
	}
	item, ok := q.items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if item.Status != StatusPending {
		return nil, fmt.Errorf("%w: %q has status %s", ErrAlreadyProcessed, key, item.Status)
	}
	return item, nil
}

// HasSkill reports whether the normalized name is queued.
func (q *Queue) HasSkill(name string) bool {
	_, ok := q.items[skillname.Normalize(name)]
	return ok
}

// ItemByName returns a copy of the queued item for name, when present.
func (q *Queue) ItemByName(name string) (Item, bool) {
	item, ok := q.items[skillname.Normalize(name)]
	if !ok {
		return Item{}, false
	}
	return copyItem(item), true
}

// Items returns copies of every queued item in insertion order.
func (q *Queue) Items() []Item {
	out := make([]Item, 0, len(q.order))
	for _, key := range q.order {
		out = append(out, copyItem(q.items[key]))
	}
	return out
}

// PendingItems returns copies of the items still awaiting a decision.
func (q *Queue) PendingItems() []Item {
	out := make([]Item, 0)
	for _, key := range q.order {
		if q.items[key].Status == StatusPending {
			out = append(out, copyItem(q.items[key]))
		}
	}
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.order)
}

func copyItem(item *Item) Item {
	out := *item
	out.DetectedIn = make([]string, len(item.DetectedIn))
	copy(out.DetectedIn, item.DetectedIn)
	return out
}

func appendSource(sources []string, sourceID string) []string {
	if sourceID == "" {
		return sources
	}
	for _, s := range sources {
		if s == sourceID {
			return sources
		}
	}
	return append(sources, sourceID)
}

type queueDocument struct {
	Items []Item `json:"items"`
}

// MarshalJSON serializes the queue as the persisted singleton document,
// preserving insertion order.
func (q *Queue) MarshalJSON() ([]byte, error) {
	return json.Marshal(queueDocument{Items: q.Items()})
}

// FromJSON rebuilds a queue from its persisted document.
func FromJSON(data []byte) (*Queue, error) {
	var doc queueDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode review queue: %w", err)
	}
	q := New()
	for i := range doc.Items {
		item := doc.Items[i]
		key := skillname.Normalize(item.SkillName)
		if key == "" {
			continue
		}
		if item.Frequency < 1 {
			item.Frequency = 1
		}
		if item.Status == "" {
			item.Status = StatusPending
		}
		item.SkillName = key
		copied := copyItem(&item)
		q.items[key] = &copied
		q.order = append(q.order, key)
	}
	return q, nil
}
